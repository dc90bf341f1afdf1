package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskhub/internal/middleware"
	"taskhub/internal/models"
	"taskhub/internal/repository"
	"taskhub/pkg/logger"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

const taskNotFoundDetail = "Task not found or you don't have permission"

// TaskHandler owns the task CRUD endpoints. Every operation passes the
// authenticated caller's id down as the ownership filter; the handler never
// fetches a task by id alone.
type TaskHandler struct {
	tasks *repository.TaskRepository
}

func NewTaskHandler(tasks *repository.TaskRepository) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	type createTaskRequest struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	}

	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Bad request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": err.Error()})
	}

	task, err := h.tasks.Create(c.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error creating task"})
	}

	logger.AuditLogger.Info("Task created", zap.Int("task_id", task.ID), zap.Int("owner_id", user.ID))
	return c.JSON(models.NewTaskResponse(task))
}

// clampListRange normalizes pagination input: negatives fall back to the
// defaults and limit is capped so one request cannot drag the whole table.
func clampListRange(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return skip, limit
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	skip, limit := clampListRange(c.QueryInt("skip", 0), c.QueryInt("limit", defaultListLimit))

	tasks, err := h.tasks.ListByOwner(c.Context(), user.ID, skip, limit)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error fetching tasks"})
	}
	return c.JSON(models.NewTaskResponses(tasks))
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		// A non-numeric id gets the same answer as an unknown one.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": taskNotFoundDetail})
	}

	var patch models.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Bad request"})
	}
	if patch.Title != nil && *patch.Title == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Title cannot be empty"})
	}

	task, err := h.tasks.Update(c.Context(), taskID, user.ID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": taskNotFoundDetail})
		}
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error updating task"})
	}

	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID), zap.Int("owner_id", user.ID))
	return c.JSON(models.NewTaskResponse(task))
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": taskNotFoundDetail})
	}

	if err := h.tasks.Delete(c.Context(), taskID, user.ID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": taskNotFoundDetail})
		}
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error deleting task"})
	}

	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID), zap.Int("owner_id", user.ID))
	return c.SendStatus(fiber.StatusNoContent)
}
