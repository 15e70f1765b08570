package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// XPGrant is the ledger row written in the same transaction as the user update.
type XPGrant struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount       int64          `gorm:"not null" json:"amount"`
	Reason       string         `gorm:"size:255" json:"reason"`
	LevelBefore  int            `json:"level_before"`
	LevelAfter   int            `json:"level_after"`
	XPBefore     int64          `json:"xp_before"`
	XPAfter      int64          `json:"xp_after"`
	LevelsGained int            `json:"levels_gained"`
	Metadata     datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
}

func (g *XPGrant) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (XPGrant) TableName() string {
	return "xp_grants"
}
