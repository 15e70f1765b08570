package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

// Goal is a savings target; completing it pays XPReward into the user's progress.
type Goal struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	Description  string         `gorm:"size:1000" json:"description,omitempty"`
	TargetAmount float64        `gorm:"not null" json:"target_amount"`
	SavedAmount  float64        `gorm:"default:0" json:"saved_amount"`
	XPReward     int64          `gorm:"not null" json:"xp_reward"`
	Status       string         `gorm:"size:20;not null;default:'active';index" json:"status"`
	Deadline     *time.Time     `json:"deadline,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
