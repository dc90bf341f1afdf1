package middleware

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskhub/pkg/logger"
)

// ThrottleKey is the Redis key holding the attempt counter for one client.
func ThrottleKey(ip string) string {
	return "login:" + ip
}

// LoginThrottle rate-limits an endpoint per client IP with a Redis counter.
// INCR and EXPIRE travel in one pipeline so a crash between them can never
// leave an immortal counter behind; the window slides while attempts keep
// coming. If Redis is unreachable the request is let through; the throttle
// is a hardening layer, not a dependency the login path may die on.
func LoginThrottle(rdb *redis.Client, max int64, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := ThrottleKey(c.IP())
		var attempts *redis.IntCmd
		_, err := rdb.Pipelined(c.Context(), func(pipe redis.Pipeliner) error {
			attempts = pipe.Incr(c.Context(), key)
			pipe.Expire(c.Context(), key, window)
			return nil
		})
		if err != nil {
			logger.ErrorLogger.Error("Login throttle unavailable", zap.Error(err))
			return c.Next()
		}
		if n := attempts.Val(); n > max {
			logger.SecurityLogger.Warn("Login throttled",
				zap.String("ip", c.IP()),
				zap.Int64("attempts", n),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": "Too many login attempts, try again later",
			})
		}
		return c.Next()
	}
}
