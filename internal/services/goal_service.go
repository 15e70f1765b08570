package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrGoalCompleted    = errors.New("goal already completed")
	ErrInvalidGoalQuery = errors.New("invalid goal status filter")
	ErrGoalNotFunded    = errors.New("goal target not reached yet")
	ErrInvalidDeposit   = errors.New("deposit must be a positive amount")
)

const (
	DefaultGoalXPReward int64 = 50
	MaxGoalXPReward     int64 = 100000
)

type GoalService struct {
	db          *gorm.DB
	settings    *SettingsService
	progression *ProgressionService
}

func NewGoalService(db *gorm.DB, settings *SettingsService, progression *ProgressionService) *GoalService {
	return &GoalService{db: db, settings: settings, progression: progression}
}

// Create stores a new active goal. The reward is taken from the goalXpReward
// setting at creation time.
func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateGoalRequest) (*models.Goal, error) {
	db := s.db.WithContext(ctx)
	reward, err := s.settings.GoalXPReward(db)
	if err != nil {
		return nil, err
	}

	goal := models.Goal{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		XPReward:     reward,
		Status:       models.GoalStatusActive,
		Deadline:     req.Deadline,
	}
	if err := db.Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &goal, nil
}

// List returns the user's goals, newest first, optionally filtered by status.
func (s *GoalService) List(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]models.Goal, int64, error) {
	if status != "" && status != models.GoalStatusActive && status != models.GoalStatusCompleted {
		return nil, 0, ErrInvalidGoalQuery
	}

	query := s.db.WithContext(ctx).Model(&models.Goal{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count goals: %w", err)
	}

	var goals []models.Goal
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&goals).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, total, nil
}

func (s *GoalService) Get(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &goal, nil
}

// Deposit adds amount to the goal's saved total.
func (s *GoalService) Deposit(ctx context.Context, userID, goalID uuid.UUID, amount float64) (*models.Goal, error) {
	if !(amount > 0) {
		return nil, ErrInvalidDeposit
	}
	var goal models.Goal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockGoal(tx, userID, goalID, &goal); err != nil {
			return err
		}
		if goal.Status == models.GoalStatusCompleted {
			return ErrGoalCompleted
		}
		goal.SavedAmount += amount
		if err := tx.Model(&goal).Update("saved_amount", goal.SavedAmount).Error; err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// Complete marks a funded goal done and pays its reward in the same transaction.
// The award is nil when the goal carries no XP.
func (s *GoalService) Complete(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, *AwardResult, error) {
	var goal models.Goal
	var award *AwardResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockGoal(tx, userID, goalID, &goal); err != nil {
			return err
		}
		if goal.Status == models.GoalStatusCompleted {
			return ErrGoalCompleted
		}
		if goal.SavedAmount < goal.TargetAmount {
			return ErrGoalNotFunded
		}

		now := time.Now()
		goal.Status = models.GoalStatusCompleted
		goal.CompletedAt = &now
		err := tx.Model(&goal).Updates(map[string]interface{}{
			"status":       goal.Status,
			"completed_at": goal.CompletedAt,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to complete goal: %w", err)
		}

		if goal.XPReward <= 0 {
			return nil
		}
		award, err = s.progression.awardTx(tx, userID, goal.XPReward, "goal:"+goal.ID.String(), map[string]interface{}{
			"goal_id": goal.ID.String(),
			"title":   goal.Title,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if award != nil {
		metrics.RecordGrant(award.Amount, award.LevelsGained)
		slog.Info("goal completed",
			"user_id", userID.String(),
			"goal_id", goalID.String(),
			"xp", award.Amount,
			"levels_gained", award.LevelsGained,
		)
	}
	return &goal, award, nil
}

func lockGoal(tx *gorm.DB, userID, goalID uuid.UUID, goal *models.Goal) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGoalNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load goal: %w", err)
	}
	return nil
}
