package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/progression"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserHandler serves the admin user endpoints, including manual XP grants.
type UserHandler struct {
	users       *services.UserService
	progression *services.ProgressionService
}

func NewUserHandler(users *services.UserService, progression *services.ProgressionService) *UserHandler {
	return &UserHandler{users: users, progression: progression}
}

// ListUsers returns every user ordered by level, then XP, both descending.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return serviceError(c, "list_users", err)
	}
	return c.JSON(dto.UsersListResponse{Success: true, Count: len(users), Users: users})
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, services.ErrUserNotFound.Error())
	}

	user, err := h.users.Get(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, "get_user", err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// AddXP credits xpAmount to the user in the path and reports any level-ups.
func (h *UserHandler) AddXP(c *fiber.Ctx) error {
	var req dto.AddXPRequest
	if err := c.BodyParser(&req); err != nil {
		// non-numeric xpAmount fails here
		return errorJSON(c, fiber.StatusBadRequest, progression.ErrInvalidAmount.Error())
	}

	amount, err := progression.ValidateAmount(req.XPAmount)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	if err := dto.Validate(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, services.ErrUserNotFound.Error())
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "admin"
	}

	res, err := h.progression.AwardXP(c.UserContext(), userID, amount, reason)
	if err != nil {
		return serviceError(c, "add_xp", err)
	}

	return c.JSON(toAddXPResponse(res))
}

func toAddXPResponse(res *services.AwardResult) dto.AddXPResponse {
	return dto.AddXPResponse{
		Success:        true,
		Message:        res.Message(),
		UserID:         res.UserID,
		Level:          res.After.Level,
		XP:             res.After.XP,
		XPForNextLevel: res.After.XPForNextLevel,
		LevelsGained:   res.LevelsGained,
	}
}
