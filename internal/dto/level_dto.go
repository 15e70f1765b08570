package dto

type LevelThresholdInput struct {
	Level      int   `json:"level" validate:"required,min=1"`
	XPRequired int64 `json:"xpRequired" validate:"required,min=1"`
}

type SetThresholdRequest struct {
	XPRequired int64 `json:"xpRequired" validate:"required,min=1"`
}

type BulkThresholdRequest struct {
	Levels []LevelThresholdInput `json:"levels" validate:"required,min=1,dive"`
}

type LevelCurveResponse struct {
	DefaultXPForNextLevel int64                 `json:"defaultXpForNextLevel"`
	Levels                []LevelThresholdInput `json:"levels"`
}

type SetSettingRequest struct {
	Value string `json:"value" validate:"required"`
	Type  string `json:"type" validate:"omitempty,oneof=string bool int json"`
}
