package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/progression"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrLevelNotFound    = errors.New("level threshold not found")
	ErrInvalidThreshold = errors.New("invalid level threshold")
)

// LevelConfigService owns the level_thresholds table and builds curve snapshots from it.
type LevelConfigService struct {
	db       *gorm.DB
	settings *SettingsService
}

func NewLevelConfigService(db *gorm.DB, settings *SettingsService) *LevelConfigService {
	return &LevelConfigService{db: db, settings: settings}
}

func (s *LevelConfigService) List(ctx context.Context) ([]models.LevelThreshold, error) {
	var rows []models.LevelThreshold
	if err := s.db.WithContext(ctx).Order("level ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list level thresholds: %w", err)
	}
	return rows, nil
}

func (s *LevelConfigService) Get(ctx context.Context, level int) (*models.LevelThreshold, error) {
	var row models.LevelThreshold
	err := s.db.WithContext(ctx).Where("level = ?", level).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLevelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get level threshold: %w", err)
	}
	return &row, nil
}

func (s *LevelConfigService) Upsert(ctx context.Context, level int, xpRequired int64) (*models.LevelThreshold, error) {
	if err := checkThreshold(level, xpRequired); err != nil {
		return nil, err
	}
	if err := upsertThreshold(s.db.WithContext(ctx), level, xpRequired); err != nil {
		return nil, err
	}
	return s.Get(ctx, level)
}

// BulkUpsert writes all rows or none.
func (s *LevelConfigService) BulkUpsert(ctx context.Context, rows []dto.LevelThresholdInput) (int, error) {
	return s.Import(ctx, 0, rows)
}

// Import sets the default threshold (when def > 0) and upserts rows in one
// transaction. Nothing is written unless every value is valid.
func (s *LevelConfigService) Import(ctx context.Context, def int64, rows []dto.LevelThresholdInput) (int, error) {
	if def < 0 {
		return 0, fmt.Errorf("%w: default must be >= 1", ErrInvalidThreshold)
	}
	if err := checkRows(rows); err != nil {
		return 0, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if def > 0 {
			if err := s.settings.putDefaultXPForNextLevel(tx, def); err != nil {
				return err
			}
		}
		for _, r := range rows {
			if err := upsertThreshold(tx, r.Level, r.XPRequired); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func checkRows(rows []dto.LevelThresholdInput) error {
	seen := make(map[int]bool, len(rows))
	for _, r := range rows {
		if err := checkThreshold(r.Level, r.XPRequired); err != nil {
			return err
		}
		if seen[r.Level] {
			return fmt.Errorf("%w: level %d listed twice", ErrInvalidThreshold, r.Level)
		}
		seen[r.Level] = true
	}
	return nil
}

func (s *LevelConfigService) Delete(ctx context.Context, level int) error {
	result := s.db.WithContext(ctx).Where("level = ?", level).Delete(&models.LevelThreshold{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete level threshold: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLevelNotFound
	}
	return nil
}

// Curve snapshots the table and default through db. Pass the caller's transaction
// so the snapshot is consistent with the rows being updated.
func (s *LevelConfigService) Curve(db *gorm.DB) (*progression.TableCurve, error) {
	var rows []models.LevelThreshold
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load level thresholds: %w", err)
	}
	fallback, err := s.settings.DefaultXPForNextLevel(db)
	if err != nil {
		return nil, err
	}

	table := make(map[int]int64, len(rows))
	for _, r := range rows {
		table[r.Level] = r.XPRequired
	}
	return progression.NewTableCurve(table, fallback), nil
}

// ThresholdFor resolves a single level against the current configuration.
func (s *LevelConfigService) ThresholdFor(ctx context.Context, level int) (int64, error) {
	db := s.db.WithContext(ctx)
	var row models.LevelThreshold
	err := db.Where("level = ?", level).First(&row).Error
	if err == nil && row.XPRequired >= 1 {
		return row.XPRequired, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to get level threshold: %w", err)
	}
	return s.settings.DefaultXPForNextLevel(db)
}

func checkThreshold(level int, xpRequired int64) error {
	if level < 1 {
		return fmt.Errorf("%w: level must be >= 1", ErrInvalidThreshold)
	}
	if xpRequired < 1 {
		return fmt.Errorf("%w: xpRequired must be >= 1", ErrInvalidThreshold)
	}
	return nil
}

func upsertThreshold(db *gorm.DB, level int, xpRequired int64) error {
	row := models.LevelThreshold{Level: level, XPRequired: xpRequired}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "level"}},
		DoUpdates: clause.AssignmentColumns([]string{"xp_required", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save level threshold: %w", err)
	}
	return nil
}
