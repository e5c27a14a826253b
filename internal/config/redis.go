// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the Redis instance backing the deferred
// extraction queue. Settings come from the loaded Config (redis_addr,
// redis_db, redis_password; VAULT_REDIS_* in the environment). The
// connection is verified with a ping so a dead Redis is reported here,
// where the server can degrade to synchronous uploads, not on the first
// enqueue.
func NewRedisClient(ctx context.Context, cfg *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}
