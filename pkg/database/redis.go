package database

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"

	"taskhub/configs"
)

// ConnectRedis opens the Redis client backing the login throttle.
func ConnectRedis(cfg configs.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: "",
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	return client
}
