package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/progression"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AwardResult is what one committed grant changed.
type AwardResult struct {
	UserID uuid.UUID
	progression.Result
	GrantID uuid.UUID
}

type ProgressionService struct {
	db     *gorm.DB
	levels *LevelConfigService
}

func NewProgressionService(db *gorm.DB, levels *LevelConfigService) *ProgressionService {
	return &ProgressionService{db: db, levels: levels}
}

// AwardXP runs the read-modify-write for one grant in a single transaction.
// The user row is locked for the duration, so concurrent grants to the same user queue up.
func (s *ProgressionService) AwardXP(ctx context.Context, userID uuid.UUID, amount int64, reason string) (*AwardResult, error) {
	var out *AwardResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.awardTx(tx, userID, amount, reason, nil)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		metrics.RecordGrantFailure(grantOutcome(err))
		return nil, err
	}

	metrics.RecordGrant(amount, out.LevelsGained)
	msg := "xp granted"
	if out.LeveledUp() {
		msg = "xp granted, level up"
	}
	slog.Info(msg,
		"user_id", userID.String(),
		"amount", amount,
		"reason", reason,
		"level", out.After.Level,
		"levels_gained", out.LevelsGained,
	)
	return out, nil
}

// awardTx must run inside a transaction; callers that already hold one (goal completion) use it directly.
func (s *ProgressionService) awardTx(tx *gorm.DB, userID uuid.UUID, amount int64, reason string, meta map[string]interface{}) (*AwardResult, error) {
	if amount <= 0 || amount > progression.MaxGrant {
		return nil, progression.ErrInvalidAmount
	}

	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	curve, err := s.levels.Curve(tx)
	if err != nil {
		return nil, err
	}

	res, err := progression.Apply(user.Progress(), amount, curve)
	if err != nil {
		return nil, err
	}

	err = tx.Model(&user).Updates(map[string]interface{}{
		"level":             res.After.Level,
		"xp":                res.After.XP,
		"xp_for_next_level": res.After.XPForNextLevel,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	grant := models.XPGrant{
		UserID:       userID,
		Amount:       amount,
		Reason:       reason,
		LevelBefore:  res.Before.Level,
		LevelAfter:   res.After.Level,
		XPBefore:     res.Before.XP,
		XPAfter:      res.After.XP,
		LevelsGained: res.LevelsGained,
	}
	if len(meta) > 0 {
		if b, err := json.Marshal(meta); err == nil {
			grant.Metadata = datatypes.JSON(b)
		}
	}
	if err := tx.Create(&grant).Error; err != nil {
		return nil, fmt.Errorf("failed to record xp grant: %w", err)
	}

	return &AwardResult{UserID: userID, Result: res, GrantID: grant.ID}, nil
}

func (s *ProgressionService) GetProgress(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &user, nil
}

// History returns a user's grants, newest first.
func (s *ProgressionService) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.XPGrant, int64, error) {
	var grants []models.XPGrant
	var total int64

	db := s.db.WithContext(ctx)
	if err := db.Model(&models.XPGrant{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count xp grants: %w", err)
	}
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&grants).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list xp grants: %w", err)
	}
	return grants, total, nil
}

func grantOutcome(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "not_found"
	case errors.Is(err, progression.ErrInvalidAmount), errors.Is(err, progression.ErrInvalidProgress):
		return "invalid"
	default:
		return "error"
	}
}
