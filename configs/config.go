package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port int

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost string
	RedisPort int

	// JWTSecret signs bearer tokens. TokenTTL bounds their validity; the
	// cookie carrying them lives much longer (CookieMaxAge), so expiry is
	// enforced by token verification, never by cookie lifetime.
	JWTSecret    string
	TokenTTL     time.Duration
	CookieMaxAge int

	// AllowOrigins is the comma-separated CORS allow-list. Credentials are
	// always enabled, so a wildcard is not accepted here.
	AllowOrigins string

	LogDir string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	return Config{
		Port:         envInt("PORT", 8000),
		DBHost:       envString("DB_HOST", "localhost"),
		DBPort:       envInt("DB_PORT", 5432),
		DBUser:       envString("DB_USER", "postgres"),
		DBPassword:   envString("DB_PASSWORD", "postgres"),
		DBName:       envString("DB_NAME", "taskhub"),
		RedisHost:    envString("REDIS_HOST", "localhost"),
		RedisPort:    envInt("REDIS_PORT", 6379),
		JWTSecret:    envString("JWT_SECRET", "change-me"),
		TokenTTL:     time.Duration(envInt("TOKEN_TTL_MINUTES", 30)) * time.Minute,
		CookieMaxAge: envInt("COOKIE_MAX_AGE_SECONDS", 1000000),
		AllowOrigins: envString("ALLOW_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		LogDir:       envString("LOG_DIR", "logs"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
