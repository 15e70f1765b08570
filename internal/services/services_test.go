package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testStack struct {
	db          *gorm.DB
	cfg         *config.Config
	settings    *SettingsService
	levels      *LevelConfigService
	progression *ProgressionService
	auth        *AuthService
	users       *UserService
	goals       *GoalService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:             "test-secret",
		JWTAccessExpiry:       15 * time.Minute,
		JWTRefreshExpiry:      time.Hour,
		BcryptCost:            4,
		DefaultXPForNextLevel: 100,
	}
	settings := NewSettingsService(db, cfg)
	levels := NewLevelConfigService(db, settings)
	progression := NewProgressionService(db, levels)
	return &testStack{
		db:          db,
		cfg:         cfg,
		settings:    settings,
		levels:      levels,
		progression: progression,
		auth:        NewAuthService(db, cfg, levels),
		users:       NewUserService(db),
		goals:       NewGoalService(db, settings, progression),
	}
}

func (s *testStack) createUser(t *testing.T, name string, level int, xp, next int64) *models.User {
	t.Helper()
	u := &models.User{
		Email:          name + "@budgetxp.io",
		Username:       name,
		Password:       "x",
		Role:           "user",
		Level:          level,
		XP:             xp,
		XPForNextLevel: next,
	}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func (s *testStack) reload(t *testing.T, id interface{}) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, s.db.First(&u, "id = ?", id).Error)
	return u
}
