package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrInvalidSetting  = errors.New("invalid setting value")
)

// SettingsService manages the system_settings key/value table.
type SettingsService struct {
	db        *gorm.DB
	defaultXP int64
}

func NewSettingsService(db *gorm.DB, cfg *config.Config) *SettingsService {
	return &SettingsService{db: db, defaultXP: cfg.DefaultXPForNextLevel}
}

func (s *SettingsService) List(ctx context.Context) ([]models.SystemSetting, error) {
	var settings []models.SystemSetting
	if err := s.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// All returns every setting decoded by its declared type.
func (s *SettingsService) All(ctx context.Context) (map[string]interface{}, error) {
	settings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string]interface{}, len(settings))
	for _, st := range settings {
		result[st.Key] = decodeSetting(st)
	}
	return result, nil
}

func (s *SettingsService) Set(ctx context.Context, key, value, typ string) (*models.SystemSetting, error) {
	if typ == "" {
		typ = "string"
	}
	if key == models.SettingDefaultXPForNextLevel {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s must be an integer >= 1", ErrInvalidThreshold, key)
		}
		typ = "int"
	}
	if key == models.SettingGoalXPReward {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 || n > MaxGoalXPReward {
			return nil, fmt.Errorf("%w: %s must be an integer between 0 and %d", ErrInvalidSetting, key, MaxGoalXPReward)
		}
		typ = "int"
	}
	if err := checkSettingType(value, typ); err != nil {
		return nil, err
	}

	if err := upsertSetting(s.db.WithContext(ctx), key, value, typ); err != nil {
		return nil, err
	}

	var stored models.SystemSetting
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to reload setting: %w", err)
	}
	return &stored, nil
}

func (s *SettingsService) Delete(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.SystemSetting{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete setting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}

func (s *SettingsService) putDefaultXPForNextLevel(db *gorm.DB, n int64) error {
	return upsertSetting(db, models.SettingDefaultXPForNextLevel, strconv.FormatInt(n, 10), "int")
}

func upsertSetting(db *gorm.DB, key, value, typ string) error {
	setting := models.SystemSetting{Key: key, Value: value, Type: typ}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	return nil
}

// SeedDefaults creates the default XP threshold row from config when it is missing.
func (s *SettingsService) SeedDefaults(ctx context.Context) error {
	setting := models.SystemSetting{
		Key:   models.SettingDefaultXPForNextLevel,
		Value: strconv.FormatInt(s.defaultXP, 10),
		Type:  "int",
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error
}

// DefaultXPForNextLevel reads the stored default through db, which may be a transaction.
// A missing or malformed row falls back to the configured value.
func (s *SettingsService) DefaultXPForNextLevel(db *gorm.DB) (int64, error) {
	var setting models.SystemSetting
	err := db.Where("key = ?", models.SettingDefaultXPForNextLevel).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaultXP, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read default threshold: %w", err)
	}
	n, err := strconv.ParseInt(setting.Value, 10, 64)
	if err != nil || n < 1 {
		return s.defaultXP, nil
	}
	return n, nil
}

// GoalXPReward reads the per-goal completion reward through db.
// A missing or malformed row falls back to DefaultGoalXPReward.
func (s *SettingsService) GoalXPReward(db *gorm.DB) (int64, error) {
	var setting models.SystemSetting
	err := db.Where("key = ?", models.SettingGoalXPReward).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultGoalXPReward, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read goal reward: %w", err)
	}
	n, err := strconv.ParseInt(setting.Value, 10, 64)
	if err != nil || n < 0 || n > MaxGoalXPReward {
		return DefaultGoalXPReward, nil
	}
	return n, nil
}

func checkSettingType(value, typ string) error {
	switch typ {
	case "string":
		return nil
	case "bool":
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %q is not a bool", ErrInvalidSetting, value)
		}
	case "int":
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("%w: %q is not an int", ErrInvalidSetting, value)
		}
	case "json":
		if !json.Valid([]byte(value)) {
			return fmt.Errorf("%w: value is not valid json", ErrInvalidSetting)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidSetting, typ)
	}
	return nil
}

func decodeSetting(st models.SystemSetting) interface{} {
	var value interface{}
	switch st.Type {
	case "bool":
		value, _ = strconv.ParseBool(st.Value)
	case "int":
		value, _ = strconv.ParseInt(st.Value, 10, 64)
	case "json":
		_ = json.Unmarshal([]byte(st.Value), &value)
	default:
		value = st.Value
	}
	return value
}

// DefaultThreshold is DefaultXPForNextLevel outside a transaction.
func (s *SettingsService) DefaultThreshold(ctx context.Context) (int64, error) {
	return s.DefaultXPForNextLevel(s.db.WithContext(ctx))
}
