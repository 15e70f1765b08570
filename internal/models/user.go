package models

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/progression"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account record. Level, XP and XPForNextLevel are only written through
// the accrual engine (see services.ProgressionService) and at signup.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Username       string         `gorm:"not null;size:64;uniqueIndex" json:"username"`
	Password       string         `gorm:"not null" json:"-"`
	Role           string         `gorm:"size:20;default:'user'" json:"role"`
	Level          int            `gorm:"not null;default:1;index:idx_users_leaderboard,priority:1,sort:desc" json:"level"`
	XP             int64          `gorm:"not null;default:0;index:idx_users_leaderboard,priority:2,sort:desc" json:"xp"`
	XPForNextLevel int64          `gorm:"not null;default:100" json:"xpForNextLevel"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) Progress() progression.Progress {
	return progression.Progress{Level: u.Level, XP: u.XP, XPForNextLevel: u.XPForNextLevel}
}

func (u *User) SetProgress(p progression.Progress) {
	u.Level = p.Level
	u.XP = p.XP
	u.XPForNextLevel = p.XPForNextLevel
}
