package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/progression"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// serviceError maps service sentinels to HTTP statuses. Anything unknown is
// logged and reported as a 500 without details.
func serviceError(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, progression.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidThreshold),
		errors.Is(err, services.ErrInvalidSetting),
		errors.Is(err, services.ErrInvalidGoalQuery),
		errors.Is(err, services.ErrInvalidDeposit):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrLevelNotFound),
		errors.Is(err, services.ErrSettingNotFound),
		errors.Is(err, services.ErrGoalNotFound):
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrGoalCompleted),
		errors.Is(err, services.ErrGoalNotFunded):
		return errorJSON(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return errorJSON(c, fiber.StatusUnauthorized, err.Error())
	}

	slog.Error("request failed",
		"request_id", requestID(c),
		"action", action,
		"error", err,
	)
	return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
}

var errInvalidBody = errors.New("invalid request body")

// parseBody decodes and validates the request body into req. The returned
// error is safe to show to the client.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errInvalidBody
	}
	return dto.Validate(req)
}

// pagination reads page/limit query params. limit is capped at 100.
func pagination(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
