package handlers

import (
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GoalHandler struct {
	goals *services.GoalService
}

func NewGoalHandler(goals *services.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateGoalRequest
	if err := parseBody(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	goal, err := h.goals.Create(c.UserContext(), userID, &req)
	if err != nil {
		return serviceError(c, "create_goal", err)
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

// List supports ?status=active|completed plus page/limit.
func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	page, limit, offset := pagination(c)
	goals, total, err := h.goals.List(c.UserContext(), userID, c.Query("status"), limit, offset)
	if err != nil {
		return serviceError(c, "list_goals", err)
	}
	return c.JSON(dto.GoalListResponse{Goals: goals, Total: total, Page: page, Limit: limit})
}

func (h *GoalHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, services.ErrGoalNotFound.Error())
	}

	goal, err := h.goals.Get(c.UserContext(), userID, goalID)
	if err != nil {
		return serviceError(c, "get_goal", err)
	}
	return c.JSON(goal)
}

// Deposit records money put towards the goal.
func (h *GoalHandler) Deposit(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, services.ErrGoalNotFound.Error())
	}

	var req dto.DepositGoalRequest
	if err := parseBody(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	goal, err := h.goals.Deposit(c.UserContext(), userID, goalID, req.Amount)
	if err != nil {
		return serviceError(c, "deposit_goal", err)
	}
	return c.JSON(goal)
}

// Complete closes the goal and pays out its XP reward.
func (h *GoalHandler) Complete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, services.ErrGoalNotFound.Error())
	}

	goal, award, err := h.goals.Complete(c.UserContext(), userID, goalID)
	if err != nil {
		return serviceError(c, "complete_goal", err)
	}

	resp := dto.CompleteGoalResponse{Goal: goal}
	if award != nil {
		a := toAddXPResponse(award)
		resp.Award = &a
	}
	return c.JSON(resp)
}
