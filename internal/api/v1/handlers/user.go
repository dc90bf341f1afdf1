package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskhub/internal/auth"
	"taskhub/internal/middleware"
	"taskhub/internal/models"
	"taskhub/internal/repository"
	"taskhub/pkg/logger"
)

// UserHandler owns registration and the current-user endpoint.
type UserHandler struct {
	users  *repository.UserRepository
	tasks  *repository.TaskRepository
	hasher auth.Hasher
}

func NewUserHandler(users *repository.UserRepository, tasks *repository.TaskRepository, hasher auth.Hasher) *UserHandler {
	return &UserHandler{users: users, tasks: tasks, hasher: hasher}
}

// Register creates a user. Duplicates are detected by the unique index, not
// by a lookup first, so concurrent registrations of the same email resolve
// cleanly to one success and one 400.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	type registerRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Bad request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": err.Error()})
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error hashing password"})
	}

	user, err := h.users.Create(c.Context(), req.Email, digest)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			logger.SecurityLogger.Warn("Duplicate email", zap.String("email", req.Email))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Email already registered"})
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error creating user"})
	}

	logger.AuditLogger.Info("User registered", zap.Int("user_id", user.ID))
	return c.JSON(models.NewUserResponse(user, nil))
}

// Me returns the authenticated user with all their tasks embedded.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	tasks, err := h.tasks.AllByOwner(c.Context(), user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks for user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error fetching tasks"})
	}
	return c.JSON(models.NewUserResponse(user, tasks))
}
