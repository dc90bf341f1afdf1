package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"taskhub/configs"
	v1 "taskhub/internal/api/v1"
	"taskhub/internal/api/v1/handlers"
	"taskhub/internal/auth"
	"taskhub/internal/middleware"
	"taskhub/internal/repository"
	"taskhub/pkg/database"
	"taskhub/pkg/logger"
)

func main() {
	cfg := configs.LoadConfig()

	logger.InitLoggers(cfg.LogDir)
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting taskhub API", zap.String("time", time.Now().Format(time.RFC3339)))

	db := database.ConnectDB(cfg)
	defer db.Close()
	logger.SystemLogger.Info("Database connected")

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	rdb := database.ConnectRedis(cfg)
	defer rdb.Close()

	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	hasher := auth.NewHasher()
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)

	app := fiber.New()

	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	v1.RegisterRoutes(app, v1.Handlers{
		Auth:          handlers.NewAuthHandler(users, hasher, tokens, cfg.CookieMaxAge),
		Users:         handlers.NewUserHandler(users, tasks, hasher),
		Tasks:         handlers.NewTaskHandler(tasks),
		RequireUser:   middleware.RequireUser(tokens, users),
		LoginThrottle: middleware.LoginThrottle(rdb, 10, time.Minute),
	})

	logger.SystemLogger.Info("Application ready", zap.Int("port", cfg.Port))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
