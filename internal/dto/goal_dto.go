package dto

import "time"

type CreateGoalRequest struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Description  string     `json:"description" validate:"max=1000"`
	TargetAmount float64    `json:"targetAmount" validate:"required,gt=0"`
	SavedAmount  float64    `json:"savedAmount" validate:"gte=0"`
	Deadline     *time.Time `json:"deadline"`
}

type DepositGoalRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0,lte=1000000000"`
}

type GoalListResponse struct {
	Goals interface{} `json:"goals"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

type CompleteGoalResponse struct {
	Goal  interface{}    `json:"goal"`
	Award *AddXPResponse `json:"award,omitempty"`
}
