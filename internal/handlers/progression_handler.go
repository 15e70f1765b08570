package handlers

import (
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProgressionHandler struct {
	progression *services.ProgressionService
}

func NewProgressionHandler(progression *services.ProgressionService) *ProgressionHandler {
	return &ProgressionHandler{progression: progression}
}

// MyProgress returns the caller's level, XP and distance to the next level.
func (h *ProgressionHandler) MyProgress(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.progression.GetProgress(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, "get_progress", err)
	}

	p := user.Progress()
	return c.JSON(dto.ProgressResponse{
		UserID:          user.ID,
		Username:        user.Username,
		Level:           p.Level,
		XP:              p.XP,
		XPForNextLevel:  p.XPForNextLevel,
		XPRemaining:     p.Remaining(),
		ProgressPercent: p.Percent(),
	})
}

func (h *ProgressionHandler) History(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	page, limit, offset := pagination(c)
	grants, total, err := h.progression.History(c.UserContext(), userID, limit, offset)
	if err != nil {
		return serviceError(c, "xp_history", err)
	}

	out := make([]dto.XPGrantResponse, len(grants))
	for i, g := range grants {
		out[i] = dto.XPGrantResponse{
			ID:           g.ID,
			Amount:       g.Amount,
			Reason:       g.Reason,
			LevelBefore:  g.LevelBefore,
			LevelAfter:   g.LevelAfter,
			LevelsGained: g.LevelsGained,
			CreatedAt:    g.CreatedAt,
		}
	}
	return c.JSON(dto.XPHistoryResponse{Grants: out, Total: total, Page: page, Limit: limit})
}
