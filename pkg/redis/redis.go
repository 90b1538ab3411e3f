package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/naveen-dev-dotcom/attendance-app/config"
)

// ErrLockHeld is returned when a submit lock is already held by another
// request for the same key.
var ErrLockHeld = errors.New("lock already held")

// Client wraps the Redis connection. Used for the token blacklist and
// for serializing attendance submissions per (class, day) key.
type Client struct {
	rdb    *goredis.Client
	locker *redislock.Client
	logger *zap.Logger
}

// NewClient connects to Redis and pings it as a health check.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, locker: redislock.New(rdb), logger: logger}, nil
}

// ── Token blacklist ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken adds a JWT ID to the blacklist with a TTL matching the
// token's remaining lifetime.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to blacklist
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether a JWT ID is blacklisted.
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── Submit locks ──

const submitLockPrefix = "attendance:submit:"

// WithSubmitLock runs fn while holding the lock for one (class, day)
// key, serializing concurrent submissions against the same day.
func (c *Client) WithSubmitLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error {
	lock, err := c.locker.Obtain(ctx, submitLockPrefix+key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 5),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return ErrLockHeld
		}
		return err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			c.logger.Warn("release submit lock failed", zap.String("key", key), zap.Error(err))
		}
	}()

	return fn()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
