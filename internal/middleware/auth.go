package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskhub/internal/auth"
	"taskhub/internal/models"
	"taskhub/internal/repository"
	"taskhub/pkg/logger"
)

const cookieName = "access_token"
const localsUserKey = "currentUser"

// RequireUser resolves the caller's identity. The token is taken from the
// Authorization header first, then from the access_token cookie; both carry
// the same "Bearer <token>" form, since the login handler writes the full
// bearer string into the cookie. On success the user row is stored in
// request locals; every failure is a 401 with a bearer challenge.
func RequireUser(tokens *auth.TokenService, users *repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(fiber.HeaderAuthorization)
		if raw == "" {
			raw = c.Cookies(cookieName)
		}
		// Some clients quote cookie values that contain a space.
		raw = strings.Trim(raw, `"`)
		token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
		if token == "" {
			return unauthenticated(c, "Not authenticated")
		}

		subject, err := tokens.Verify(token)
		if err != nil {
			logger.SecurityLogger.Warn("Token rejected", zap.Error(err))
			return unauthenticated(c, "Could not validate credentials")
		}

		user, err := users.FindByEmail(c.Context(), subject)
		if err != nil {
			logger.SecurityLogger.Warn("Token subject no longer resolves", zap.String("subject", subject))
			return unauthenticated(c, "Could not validate credentials")
		}

		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser. Only valid on
// routes behind that middleware.
func CurrentUser(c *fiber.Ctx) models.User {
	return c.Locals(localsUserKey).(models.User)
}

func unauthenticated(c *fiber.Ctx, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": detail})
}
