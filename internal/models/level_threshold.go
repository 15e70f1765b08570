package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LevelThreshold is the XP needed to leave Level. Levels without a row use the default setting.
type LevelThreshold struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Level      int       `gorm:"not null;uniqueIndex;check:level >= 1" json:"level"`
	XPRequired int64     `gorm:"not null;check:xp_required >= 1" json:"xpRequired"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (lt *LevelThreshold) BeforeCreate(tx *gorm.DB) error {
	if lt.ID == uuid.Nil {
		lt.ID = uuid.New()
	}
	return nil
}

func (LevelThreshold) TableName() string {
	return "level_thresholds"
}
