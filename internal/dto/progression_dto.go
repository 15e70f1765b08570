package dto

import (
	"time"

	"github.com/google/uuid"
)

// AddXPRequest keeps xpAmount as a float so fractional or oversized values reach
// progression.ValidateAmount instead of failing inside the JSON decoder.
type AddXPRequest struct {
	XPAmount float64 `json:"xpAmount" validate:"required,gt=0"`
	Reason   string  `json:"reason" validate:"max=255"`
}

type AddXPResponse struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	UserID         uuid.UUID `json:"userId"`
	Level          int       `json:"level"`
	XP             int64     `json:"xp"`
	XPForNextLevel int64     `json:"xpForNextLevel"`
	LevelsGained   int       `json:"levelsGained"`
}

type ProgressResponse struct {
	UserID          uuid.UUID `json:"userId"`
	Username        string    `json:"username"`
	Level           int       `json:"level"`
	XP              int64     `json:"xp"`
	XPForNextLevel  int64     `json:"xpForNextLevel"`
	XPRemaining     int64     `json:"xpRemaining"`
	ProgressPercent float64   `json:"progressPercent"`
}

type UsersListResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Users   []UserResponse `json:"users"`
}

type XPGrantResponse struct {
	ID           uuid.UUID `json:"id"`
	Amount       int64     `json:"amount"`
	Reason       string    `json:"reason"`
	LevelBefore  int       `json:"levelBefore"`
	LevelAfter   int       `json:"levelAfter"`
	LevelsGained int       `json:"levelsGained"`
	CreatedAt    time.Time `json:"createdAt"`
}

type XPHistoryResponse struct {
	Grants []XPGrantResponse `json:"grants"`
	Total  int64             `json:"total"`
	Page   int               `json:"page"`
	Limit  int               `json:"limit"`
}
