package v1

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/internal/api/v1/handlers"
)

// Handlers bundles everything RegisterRoutes needs; main and the tests
// assemble it from their own dependency sets.
type Handlers struct {
	Auth  *handlers.AuthHandler
	Users *handlers.UserHandler
	Tasks *handlers.TaskHandler

	RequireUser   fiber.Handler
	LoginThrottle fiber.Handler
}

func RegisterRoutes(app *fiber.App, h Handlers) {
	// Auth
	app.Post("/token", h.LoginThrottle, h.Auth.Login)
	app.Post("/logout", h.Auth.Logout)

	// Users
	app.Post("/users/", h.Users.Register)
	app.Get("/users/me/", h.RequireUser, h.Users.Me)

	// Tasks
	taskRoutes := app.Group("/tasks", h.RequireUser)
	taskRoutes.Post("/", h.Tasks.Create)
	taskRoutes.Get("/", h.Tasks.List)
	taskRoutes.Put("/:id", h.Tasks.Update)
	taskRoutes.Delete("/:id", h.Tasks.Delete)
}
