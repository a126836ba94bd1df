package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/ledger/internal/config"
	"github.com/sirupsen/logrus"
)

// InitRedis connects to Redis. It returns nil when the server is
// unreachable so callers can run without the notification feed.
func InitRedis(ctx context.Context, cfg config.RedisConfig, logger *logrus.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	log := logger.WithField("component", "redis")
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warnf("Redis connection failed, continuing without Redis: %v", err)
		rdb.Close()
		return nil
	}

	log.Info("Redis connection established")
	return rdb
}
