package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingDefaultXPForNextLevel seeds new accounts and backs levels with no threshold row.
const SettingDefaultXPForNextLevel = "defaultXpForNextLevel"

// SettingGoalXPReward is the XP a savings goal pays when it is completed.
const SettingGoalXPReward = "goalXpReward"

// SystemSetting stores admin-editable global values
type SystemSetting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	Type      string    `gorm:"size:20;default:'string'" json:"type"` // string, bool, int, json
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate ensures UUID is set before creation
func (s *SystemSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
