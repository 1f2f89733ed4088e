package config

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	eredis "github.com/ecodeclub/ecache/redis"
	"github.com/redis/go-redis/v9"
)

// InitCache connects to Redis and wraps it as an ecache.Cache.
func InitCache(cfg *Config) (ecache.Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &ecache.NamespaceCache{
		C:         eredis.NewCache(client),
		Namespace: "tenderbridge:",
	}, nil
}
