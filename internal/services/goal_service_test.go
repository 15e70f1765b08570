package services

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoals_CreateListGet(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	u := s.createUser(t, "goals", 1, 0, 100)
	other := s.createUser(t, "other", 1, 0, 100)

	g1, err := s.goals.Create(ctx, u.ID, &dto.CreateGoalRequest{Title: "Vacation", TargetAmount: 1500})
	require.NoError(t, err)
	assert.EqualValues(t, DefaultGoalXPReward, g1.XPReward)
	assert.Equal(t, models.GoalStatusActive, g1.Status)

	_, err = s.goals.Create(ctx, u.ID, &dto.CreateGoalRequest{Title: "Laptop", TargetAmount: 900})
	require.NoError(t, err)

	goals, total, err := s.goals.List(ctx, u.ID, "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, goals, 2)

	_, total, err = s.goals.List(ctx, u.ID, models.GoalStatusCompleted, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, _, err = s.goals.List(ctx, u.ID, "archived", 10, 0)
	assert.ErrorIs(t, err, ErrInvalidGoalQuery)

	got, err := s.goals.Get(ctx, u.ID, g1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vacation", got.Title)

	_, err = s.goals.Get(ctx, other.ID, g1.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoals_CompleteAwardsOnce(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	u := s.createUser(t, "finisher", 1, 80, 100)

	goal, err := s.goals.Create(ctx, u.ID, &dto.CreateGoalRequest{Title: "Emergency fund", TargetAmount: 500, SavedAmount: 200})
	require.NoError(t, err)

	_, _, err = s.goals.Complete(ctx, u.ID, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFunded)
	assert.EqualValues(t, 80, s.reload(t, u.ID).XP)

	funded, err := s.goals.Deposit(ctx, u.ID, goal.ID, 300)
	require.NoError(t, err)
	assert.Equal(t, 500.0, funded.SavedAmount)

	done, award, err := s.goals.Complete(ctx, u.ID, goal.ID)
	require.NoError(t, err)
	require.NotNil(t, award)
	assert.Equal(t, models.GoalStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)
	assert.Equal(t, 500.0, done.SavedAmount)
	assert.Equal(t, 1, award.LevelsGained)
	assert.Equal(t, 2, award.After.Level)
	assert.EqualValues(t, 30, award.After.XP)

	var grant models.XPGrant
	require.NoError(t, s.db.First(&grant, "id = ?", award.GrantID).Error)
	assert.Equal(t, "goal:"+goal.ID.String(), grant.Reason)

	_, _, err = s.goals.Complete(ctx, u.ID, goal.ID)
	assert.ErrorIs(t, err, ErrGoalCompleted)
	_, err = s.goals.Deposit(ctx, u.ID, goal.ID, 10)
	assert.ErrorIs(t, err, ErrGoalCompleted)

	got := s.reload(t, u.ID)
	assert.EqualValues(t, 30, got.XP)
}

func TestGoals_CompleteZeroReward(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	u := s.createUser(t, "free", 1, 0, 100)

	_, err := s.settings.Set(ctx, models.SettingGoalXPReward, "0", "int")
	require.NoError(t, err)
	goal, err := s.goals.Create(ctx, u.ID, &dto.CreateGoalRequest{Title: "Track spending", TargetAmount: 1, SavedAmount: 1})
	require.NoError(t, err)

	_, award, err := s.goals.Complete(ctx, u.ID, goal.ID)
	require.NoError(t, err)
	assert.Nil(t, award)
}

func TestGoals_CompleteRollsBackWhenAwardFails(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	// goal owned by an id with no user row: the award fails after the goal update
	orphan := uuid.New()
	goal := models.Goal{UserID: orphan, Title: "Orphan", TargetAmount: 10, SavedAmount: 10, XPReward: 50, Status: models.GoalStatusActive}
	require.NoError(t, s.db.Create(&goal).Error)

	_, _, err := s.goals.Complete(ctx, orphan, goal.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var stored models.Goal
	require.NoError(t, s.db.First(&stored, "id = ?", goal.ID).Error)
	assert.Equal(t, models.GoalStatusActive, stored.Status)
	assert.Nil(t, stored.CompletedAt)
}

func TestGoals_CompleteUnknownGoal(t *testing.T) {
	s := newTestStack(t)
	u := s.createUser(t, "nobody", 1, 0, 100)

	_, _, err := s.goals.Complete(context.Background(), u.ID, uuid.New())
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoals_RewardComesFromSettings(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	u := s.createUser(t, "farmer", 1, 0, 100)

	// a client-sent xpReward is not part of the request type and is dropped on decode
	var req dto.CreateGoalRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Farm","targetAmount":1,"savedAmount":1,"xpReward":100000}`), &req))

	goal, err := s.goals.Create(ctx, u.ID, &req)
	require.NoError(t, err)
	assert.EqualValues(t, DefaultGoalXPReward, goal.XPReward)

	_, award, err := s.goals.Complete(ctx, u.ID, goal.ID)
	require.NoError(t, err)
	require.NotNil(t, award)
	assert.EqualValues(t, DefaultGoalXPReward, award.Amount)
	assert.Equal(t, 0, award.LevelsGained)

	_, err = s.settings.Set(ctx, models.SettingGoalXPReward, "75", "int")
	require.NoError(t, err)
	next, err := s.goals.Create(ctx, u.ID, &dto.CreateGoalRequest{Title: "Second", TargetAmount: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 75, next.XPReward)
}

func TestGoals_DepositValidation(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	u := s.createUser(t, "saver", 1, 0, 100)
	other := s.createUser(t, "stranger", 1, 0, 100)

	goal, err := s.goals.Create(ctx, u.ID, &dto.CreateGoalRequest{Title: "Car", TargetAmount: 1000})
	require.NoError(t, err)

	for _, amount := range []float64{0, -5, math.NaN()} {
		_, err := s.goals.Deposit(ctx, u.ID, goal.ID, amount)
		assert.ErrorIs(t, err, ErrInvalidDeposit, "amount %v", amount)
	}

	_, err = s.goals.Deposit(ctx, other.ID, goal.ID, 10)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	got, err := s.goals.Deposit(ctx, u.ID, goal.ID, 250.5)
	require.NoError(t, err)
	assert.Equal(t, 250.5, got.SavedAmount)
}
