package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskhub/pkg/logger"
)

// ErrorHandler logs every inbound request and converts panics into 500s so
// a single bad request never takes the process down.
func ErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				errMsg := fmt.Sprintf("Recovered from panic: %v", r)
				logger.ErrorLogger.Error(errMsg, zap.String("stack", string(debug.Stack())))
				c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"detail": "Internal server error",
				})
			}
		}()
		logger.RequestLogger.Info("Incoming request",
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
		)
		return c.Next()
	}
}
