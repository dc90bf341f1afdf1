package handlers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskhub/internal/auth"
	"taskhub/internal/repository"
	"taskhub/pkg/logger"
)

var validate = validator.New()

// AuthHandler owns the login and logout endpoints.
type AuthHandler struct {
	users        *repository.UserRepository
	hasher       auth.Hasher
	tokens       *auth.TokenService
	cookieMaxAge int
}

func NewAuthHandler(users *repository.UserRepository, hasher auth.Hasher, tokens *auth.TokenService, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{users: users, hasher: hasher, tokens: tokens, cookieMaxAge: cookieMaxAge}
}

// Login accepts form-encoded credentials (the username field carries the
// email), verifies them and delivers the signed token in the access_token
// cookie. The cookie outlives the token on purpose: the short token expiry
// is the authoritative control, the long cookie just saves the browser a
// round of re-prompting until then.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	type loginRequest struct {
		Username string `form:"username" validate:"required"`
		Password string `form:"password" validate:"required"`
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Bad request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": err.Error()})
	}

	user, err := h.users.FindByEmail(c.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			logger.ErrorLogger.Error("Error fetching user for login", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error fetching user"})
		}
		return h.rejectCredentials(c, req.Username)
	}
	if !h.hasher.Verify(req.Password, user.HashedPassword) {
		return h.rejectCredentials(c, req.Username)
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error generating token"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "Bearer " + token,
		Path:     "/",
		MaxAge:   h.cookieMaxAge,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})

	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID))
	return c.JSON(fiber.Map{"message": "Login successful"})
}

func (h *AuthHandler) rejectCredentials(c *fiber.Ctx, email string) error {
	logger.SecurityLogger.Warn("Invalid credentials", zap.String("email", email))
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Incorrect email or password"})
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; there is no server-side session to tear down.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
	return c.JSON(fiber.Map{"message": "Logout successful"})
}
