package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns all users, highest level first and then most XP.
func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("level DESC").Order("xp DESC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]dto.UserResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	resp := toUserResponse(&user)
	return &resp, nil
}

// IsAdmin reports whether the stored role of userID is admin.
func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) bool {
	var user models.User
	if err := s.db.WithContext(ctx).Select("role").First(&user, "id = ?", userID).Error; err != nil {
		return false
	}
	return user.Role == "admin"
}
