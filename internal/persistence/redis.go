package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/config"
)

// Redis holds the client backing the token revocation list.
type Redis struct {
	Client *redis.Client
}

// NewRedis returns nil when cfg.Addr is empty. Otherwise it returns a client
// even if the first ping fails; that failure is logged, not returned.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if cfg.Addr == "" {
		logger.Info("REDIS_ADDR not set; token revocations are kept in memory")
		return nil
	}

	client := redis.NewClient(redisOptions(cfg))
	log := logger.With(zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("unable to reach redis", zap.Error(err))
	} else {
		log.Info("connected to redis")
	}
	return &Redis{Client: client}
}

func redisOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: pingTimeout,
	}
}

// Close closes the client. It is safe on a nil receiver.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping reports whether Redis answers; readiness checks call it.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
