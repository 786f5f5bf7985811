// config/redis.go
package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitRedis connects to redis when an address is configured.
// A nil client means the bot runs without redis (in-process scheduling, no send locks).
func InitRedis(cfg Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword, // kosong kalau tidak ada password
		DB:       cfg.RedisDB,
	})

	// Test koneksi
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("gagal koneksi ke redis %s: %w", cfg.RedisAddr, err)
	}

	slog.Info("✅ Redis connected", "addr", cfg.RedisAddr)
	return rdb, nil
}

// AsynqRedisOpt mirrors the redis settings for asynq.
func AsynqRedisOpt(cfg Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}
