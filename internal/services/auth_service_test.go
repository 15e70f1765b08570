package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAuth_RegisterSeedsProgress(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	resp, err := s.auth.Register(ctx, &dto.RegisterRequest{Email: "Ana@BudgetXP.io", Username: "ana", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@budgetxp.io", resp.User.Email)
	assert.Equal(t, 1, resp.User.Level)
	assert.EqualValues(t, 0, resp.User.XP)
	assert.EqualValues(t, 100, resp.User.XPForNextLevel)
	assert.NotEmpty(t, resp.RefreshToken)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "ana", claims["username"])
	assert.Equal(t, "user", claims["role"])

	// a level-1 row overrides the default for new accounts
	_, err = s.levels.Upsert(ctx, 1, 40)
	require.NoError(t, err)
	resp, err = s.auth.Register(ctx, &dto.RegisterRequest{Email: "ben@budgetxp.io", Username: "ben", Password: "secret1"})
	require.NoError(t, err)
	assert.EqualValues(t, 40, resp.User.XPForNextLevel)
}

func TestAuth_RegisterConflicts(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	_, err := s.auth.Register(ctx, &dto.RegisterRequest{Email: "ana@budgetxp.io", Username: "ana", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.auth.Register(ctx, &dto.RegisterRequest{Email: "ANA@budgetxp.io", Username: "other", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.auth.Register(ctx, &dto.RegisterRequest{Email: "new@budgetxp.io", Username: "ana", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuth_RegisterUniqueIndexConflict(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	// soft-deleted rows pass the existence checks but still hold the unique keys
	ghost := s.createUser(t, "ghost", 1, 0, 100)
	require.NoError(t, s.db.Delete(ghost).Error)

	_, err := s.auth.Register(ctx, &dto.RegisterRequest{Email: "ghost@budgetxp.io", Username: "fresh", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.auth.Register(ctx, &dto.RegisterRequest{Email: "fresh@budgetxp.io", Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuth_LoginRefreshLogout(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	_, err := s.auth.Register(ctx, &dto.RegisterRequest{Email: "ana@budgetxp.io", Username: "ana", Password: "secret1"})
	require.NoError(t, err)

	byEmail, err := s.auth.Login(ctx, &dto.LoginRequest{EmailOrUsername: "ana@budgetxp.io", Password: "secret1"})
	require.NoError(t, err)
	_, err = s.auth.Login(ctx, &dto.LoginRequest{EmailOrUsername: "ana", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.auth.Login(ctx, &dto.LoginRequest{EmailOrUsername: "ana", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.auth.Login(ctx, &dto.LoginRequest{EmailOrUsername: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	refreshed, err := s.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: byEmail.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, byEmail.RefreshToken, refreshed.RefreshToken)

	// refresh tokens rotate
	_, err = s.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: byEmail.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, s.auth.Logout(ctx, &dto.LogoutRequest{RefreshToken: refreshed.RefreshToken}))
	_, err = s.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuth_RefreshFailsWhenRevokeFails(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	resp, err := s.auth.Register(ctx, &dto.RegisterRequest{Email: "ana@budgetxp.io", Username: "ana", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, s.db.Callback().Update().Before("gorm:update").Register("test:fail_revoke", func(tx *gorm.DB) {
		if tx.Statement.Table == "refresh_tokens" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err = s.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)

	var tokens int64
	require.NoError(t, s.db.Model(&models.RefreshToken{}).Count(&tokens).Error)
	assert.EqualValues(t, 1, tokens, "no new pair is issued")
}

func TestAuth_DeleteAccount(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	resp, err := s.auth.Register(ctx, &dto.RegisterRequest{Email: "ana@budgetxp.io", Username: "ana", Password: "secret1"})
	require.NoError(t, err)
	id := resp.User.ID

	_, err = s.progression.AwardXP(ctx, id, 10, "test")
	require.NoError(t, err)

	assert.ErrorIs(t, s.auth.DeleteAccount(ctx, id, "wrong"), ErrInvalidCredentials)
	require.NoError(t, s.auth.DeleteAccount(ctx, id, "secret1"))
	assert.ErrorIs(t, s.auth.DeleteAccount(ctx, id, "secret1"), ErrUserNotFound)

	var grants int64
	require.NoError(t, s.db.Model(&models.XPGrant{}).Where("user_id = ?", id).Count(&grants).Error)
	assert.Zero(t, grants)

	_, err = s.auth.Register(ctx, &dto.RegisterRequest{Email: "ana@budgetxp.io", Username: "ana", Password: "secret1"})
	assert.NoError(t, err)
}
