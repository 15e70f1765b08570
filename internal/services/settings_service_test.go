package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_DefaultThreshold(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	n, err := s.settings.DefaultThreshold(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 100, n, "config fallback before seeding")

	require.NoError(t, s.settings.SeedDefaults(ctx))
	require.NoError(t, s.settings.SeedDefaults(ctx))

	_, err = s.settings.Set(ctx, models.SettingDefaultXPForNextLevel, "250", "string")
	require.NoError(t, err)

	n, err = s.settings.DefaultThreshold(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 250, n)

	st, err := s.settings.List(ctx)
	require.NoError(t, err)
	require.Len(t, st, 1)
	assert.Equal(t, "int", st[0].Type)
}

func TestSettings_SetValidation(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		value   string
		typ     string
		wantErr error
	}{
		{"default zero", models.SettingDefaultXPForNextLevel, "0", "int", ErrInvalidThreshold},
		{"default text", models.SettingDefaultXPForNextLevel, "many", "int", ErrInvalidThreshold},
		{"goal reward negative", models.SettingGoalXPReward, "-1", "int", ErrInvalidSetting},
		{"goal reward over cap", models.SettingGoalXPReward, "100001", "int", ErrInvalidSetting},
		{"ok goal reward", models.SettingGoalXPReward, "0", "string", nil},
		{"bad bool", "maintenance", "maybe", "bool", ErrInvalidSetting},
		{"bad json", "banner", "{", "json", ErrInvalidSetting},
		{"unknown type", "x", "1", "float", ErrInvalidSetting},
		{"ok bool", "maintenance", "true", "bool", nil},
		{"ok json", "banner", `{"title":"Save more"}`, "json", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.settings.Set(ctx, tt.key, tt.value, tt.typ)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	all, err := s.settings.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, all["maintenance"])
	assert.Equal(t, map[string]interface{}{"title": "Save more"}, all["banner"])
}

func TestSettings_Delete(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	_, err := s.settings.Set(ctx, "motd", "hello", "")
	require.NoError(t, err)
	require.NoError(t, s.settings.Delete(ctx, "motd"))
	assert.ErrorIs(t, s.settings.Delete(ctx, "motd"), ErrSettingNotFound)
}
