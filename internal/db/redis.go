package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
)

const (
	redisConnectTimeout = 30 * time.Second
	redisPingTimeout    = 2 * time.Second
	redisRetryInterval  = 500 * time.Millisecond
	redisMaxWait        = 5 * time.Second
)

// NewRedisClient returns nil when no address is configured.
func NewRedisClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.SugaredLogger) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		logger.Info("redis address not set, token revocation disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()
	if err := ping(ctx, client, logger); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "redis unavailable at %s", cfg.RedisAddr)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing redis client.")
			return client.Close()
		},
	})

	return client, nil
}

// ping retries with capped exponential backoff until ctx expires.
func ping(ctx context.Context, client *redis.Client, logger *zap.SugaredLogger) error {
	wait := redisRetryInterval
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			if attempt > 1 {
				logger.Warnw("connected to redis after retry", "attempts", attempt)
			}
			return nil
		}

		logger.Warnw("redis ping failed", "attempt", attempt, "next_retry_in", wait, "error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrapf(err, "gave up after %d attempts", attempt)
		case <-timer.C:
		}

		wait *= 2
		if wait > redisMaxWait {
			wait = redisMaxWait
		}
	}
}
