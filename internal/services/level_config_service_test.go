package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLevelConfig_UpsertAndCurve(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	row, err := s.levels.Upsert(ctx, 2, 150)
	require.NoError(t, err)
	assert.EqualValues(t, 150, row.XPRequired)

	row, err = s.levels.Upsert(ctx, 2, 175)
	require.NoError(t, err)
	assert.EqualValues(t, 175, row.XPRequired)

	rows, err := s.levels.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	curve, err := s.levels.Curve(s.db)
	require.NoError(t, err)
	assert.EqualValues(t, 175, curve.ThresholdFor(2))
	assert.EqualValues(t, 100, curve.ThresholdFor(3))

	n, err := s.levels.ThresholdFor(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 175, n)
	n, err = s.levels.ThresholdFor(ctx, 9)
	require.NoError(t, err)
	assert.EqualValues(t, 100, n)
}

func TestLevelConfig_RejectsInvalidRows(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		level int
		xp    int64
	}{
		{"zero level", 0, 100},
		{"zero xp", 2, 0},
		{"negative xp", 2, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.levels.Upsert(ctx, tt.level, tt.xp)
			assert.ErrorIs(t, err, ErrInvalidThreshold)
		})
	}
}

func TestLevelConfig_BulkUpsertIsAllOrNothing(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	_, err := s.levels.BulkUpsert(ctx, []dto.LevelThresholdInput{
		{Level: 2, XPRequired: 150},
		{Level: 3, XPRequired: 0},
	})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = s.levels.BulkUpsert(ctx, []dto.LevelThresholdInput{
		{Level: 2, XPRequired: 150},
		{Level: 2, XPRequired: 160},
	})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	var count int64
	require.NoError(t, s.db.Model(&models.LevelThreshold{}).Count(&count).Error)
	assert.Zero(t, count)

	n, err := s.levels.BulkUpsert(ctx, []dto.LevelThresholdInput{
		{Level: 2, XPRequired: 150},
		{Level: 3, XPRequired: 200},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLevelConfig_ImportRollsBackDefault(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	_, err := s.levels.Import(ctx, 300, []dto.LevelThresholdInput{
		{Level: 2, XPRequired: 150},
		{Level: 2, XPRequired: 160},
	})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	def, err := s.settings.DefaultThreshold(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 100, def)

	require.NoError(t, s.db.Callback().Create().Before("gorm:create").Register("test:fail_levels", func(tx *gorm.DB) {
		if tx.Statement.Table == "level_thresholds" {
			_ = tx.AddError(errors.New("write failed"))
		}
	}))

	_, err = s.levels.Import(ctx, 300, []dto.LevelThresholdInput{{Level: 2, XPRequired: 150}})
	require.Error(t, err)

	def, err = s.settings.DefaultThreshold(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 100, def, "default rolled back with the failed rows")

	require.NoError(t, s.db.Callback().Create().Remove("test:fail_levels"))
	n, err := s.levels.Import(ctx, 300, []dto.LevelThresholdInput{{Level: 2, XPRequired: 150}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	def, err = s.settings.DefaultThreshold(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 300, def)
}

func TestLevelConfig_Delete(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	_, err := s.levels.Upsert(ctx, 4, 300)
	require.NoError(t, err)

	require.NoError(t, s.levels.Delete(ctx, 4))
	assert.ErrorIs(t, s.levels.Delete(ctx, 4), ErrLevelNotFound)

	_, err = s.levels.Get(ctx, 4)
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestLevelConfig_EditDoesNotRewriteCachedThreshold(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	u := s.createUser(t, "cached", 1, 0, 100)

	_, err := s.levels.Upsert(ctx, 1, 40)
	require.NoError(t, err)

	res, err := s.progression.AwardXP(ctx, u.ID, 50, "test")
	require.NoError(t, err)
	assert.Equal(t, 0, res.LevelsGained)
	assert.EqualValues(t, 100, res.After.XPForNextLevel)
}
