package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/trusttrip/booking-service/internal/config"
)

const connectTimeout = 3 * time.Second

// ErrRedisNotConfigured is returned by Ping on a nil or closed handle.
var ErrRedisNotConfigured = errors.New("redis client not configured")

// Redis is the session backend. Every key it hands out lives under one namespace so
// several deployments can share a database.
type Redis struct {
	Client    *redis.Client
	keyPrefix string
}

// NewRedis builds the client and probes it once. An unreachable server is not fatal:
// the API stays up, refresh and logout fail until Redis returns, and /health/ready
// reports it.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	r := &Redis{Client: client, keyPrefix: trimPrefix(cfg.KeyPrefix)}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, refresh sessions unavailable",
			zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.String("namespace", r.keyPrefix))
	}
	return r
}

// Key joins parts under the configured namespace, e.g. "trusttrip:refresh:<jti>".
func (r *Redis) Key(parts ...string) string {
	if r.keyPrefix == "" {
		return strings.Join(parts, ":")
	}
	return r.keyPrefix + ":" + strings.Join(parts, ":")
}

func trimPrefix(prefix string) string {
	return strings.Trim(prefix, ":")
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return ErrRedisNotConfigured
	}
	return r.Client.Ping(ctx).Err()
}
