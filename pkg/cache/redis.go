package cache

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/chartnote/pkg/errors"
)

// RedisURLEnv names the environment variable the CLI reads the Redis URL
// from when --redis is not given.
const RedisURLEnv = "CHARTNOTE_REDIS_URL"

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	// URL is a redis:// or rediss:// URL.
	URL string
	// Namespace prefixes every key so several tools can share a database.
	Namespace string
	// ConnectAttempts bounds the initial ping (default 3).
	ConnectAttempts int
	// ConnectDelay is the delay before the second ping (default 200ms).
	ConnectDelay time.Duration
}

// RedisCache stores entries in Redis. It lets several preview servers
// share rendered artifacts.
type RedisCache struct {
	client    *redis.Client
	namespace string
}

// NewRedisCache connects to the server at cfg.URL and pings it.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse redis url")
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "chartnote"
	}
	if cfg.ConnectAttempts <= 0 {
		cfg.ConnectAttempts = 3
	}
	if cfg.ConnectDelay <= 0 {
		cfg.ConnectDelay = 200 * time.Millisecond
	}

	client := redis.NewClient(opts)
	err = RetryWithBackoff(ctx, cfg.ConnectAttempts, cfg.ConnectDelay, func() error {
		return Retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, fmt.Errorf("%w: %w", ErrUnavailable, err), "connect to redis at %s", opts.Addr)
	}
	return &RedisCache{client: client, namespace: cfg.Namespace}, nil
}

// Namespace returns the key namespace.
func (c *RedisCache) Namespace() string { return c.namespace }

func (c *RedisCache) key(k string) string { return c.namespace + ":" + k }

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "redis get")
	}
	return data, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "redis set")
	}
	return nil
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "redis del")
	}
	return nil
}

// Clear deletes every key of the namespace.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	var (
		cursor uint64
		n      int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.namespace+":*", 100).Result()
		if err != nil {
			return n, errors.Wrap(errors.ErrCodeInternal, err, "redis scan")
		}
		if len(keys) > 0 {
			removed, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return n, errors.Wrap(errors.ErrCodeInternal, err, "redis del")
			}
			n += int(removed)
		}
		if next == 0 {
			return n, nil
		}
		cursor = next
	}
}

// Close closes the connection pool.
func (c *RedisCache) Close() error { return c.client.Close() }

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
