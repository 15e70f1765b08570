package handlers

import (
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSettings returns every setting decoded by its type.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	result, err := h.settings.All(c.UserContext())
	if err != nil {
		return serviceError(c, "list_settings", err)
	}
	return c.JSON(result)
}

// SetSetting sets or updates a key
func (h *SettingsHandler) SetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Key parameter is required")
	}

	var req dto.SetSettingRequest
	if err := parseBody(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	setting, err := h.settings.Set(c.UserContext(), key, req.Value, req.Type)
	if err != nil {
		return serviceError(c, "set_setting", err)
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Setting updated successfully",
		"setting": fiber.Map{
			"key":   setting.Key,
			"value": setting.Value,
			"type":  setting.Type,
		},
	})
}

func (h *SettingsHandler) DeleteSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Key parameter is required")
	}

	if err := h.settings.Delete(c.UserContext(), key); err != nil {
		return serviceError(c, "delete_setting", err)
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Setting deleted successfully",
	})
}
