package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/quickcart/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the session/cache Redis instance and verifies
// the connection before returning.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Addr,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
