package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// LevelHandler manages the per-level XP thresholds (admin only).
type LevelHandler struct {
	levels   *services.LevelConfigService
	settings *services.SettingsService
}

func NewLevelHandler(levels *services.LevelConfigService, settings *services.SettingsService) *LevelHandler {
	return &LevelHandler{levels: levels, settings: settings}
}

// List returns the explicit rows plus the default used for every other level.
func (h *LevelHandler) List(c *fiber.Ctx) error {
	rows, err := h.levels.List(c.UserContext())
	if err != nil {
		return serviceError(c, "list_levels", err)
	}
	def, err := h.settings.DefaultThreshold(c.UserContext())
	if err != nil {
		return serviceError(c, "list_levels", err)
	}

	out := make([]dto.LevelThresholdInput, len(rows))
	for i, r := range rows {
		out[i] = dto.LevelThresholdInput{Level: r.Level, XPRequired: r.XPRequired}
	}
	return c.JSON(dto.LevelCurveResponse{DefaultXPForNextLevel: def, Levels: out})
}

func (h *LevelHandler) Set(c *fiber.Ctx) error {
	level, err := strconv.Atoi(c.Params("level"))
	if err != nil || level < 1 {
		return errorJSON(c, fiber.StatusBadRequest, "level must be an integer >= 1")
	}

	var req dto.SetThresholdRequest
	if err := parseBody(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := h.levels.Upsert(c.UserContext(), level, req.XPRequired)
	if err != nil {
		return serviceError(c, "set_level", err)
	}
	return c.JSON(dto.LevelThresholdInput{Level: row.Level, XPRequired: row.XPRequired})
}

// Replace upserts a batch of thresholds atomically. Levels not listed are left alone.
func (h *LevelHandler) Replace(c *fiber.Ctx) error {
	var req dto.BulkThresholdRequest
	if err := parseBody(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	n, err := h.levels.BulkUpsert(c.UserContext(), req.Levels)
	if err != nil {
		return serviceError(c, "bulk_levels", err)
	}
	return c.JSON(fiber.Map{"error": false, "updated": n})
}

func (h *LevelHandler) Delete(c *fiber.Ctx) error {
	level, err := strconv.Atoi(c.Params("level"))
	if err != nil || level < 1 {
		return errorJSON(c, fiber.StatusBadRequest, "level must be an integer >= 1")
	}

	if err := h.levels.Delete(c.UserContext(), level); err != nil {
		return serviceError(c, "delete_level", err)
	}
	return c.JSON(fiber.Map{"error": false, "message": "Level threshold deleted"})
}
