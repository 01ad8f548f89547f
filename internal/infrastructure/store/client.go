package store

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/scorepoint/scoring-gateway/internal/config"
)

// Client is the remote cache contract the resilient store wraps. Get
// returns ErrCacheMiss for an absent key and a *TransientError for faults
// worth retrying.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisClient adapts a go-redis connection to the Client contract.
type RedisClient struct {
	rdb *redis.Client
}

func NewRedisClient(cfg config.StoreConfig) *RedisClient {
	return &RedisClient{
		rdb: redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			DB:           cfg.DB,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			// the resilient wrapper owns retries
			MaxRetries: -1,
		}),
	}
}

func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", classify("get", err)
	}
	return val, nil
}

func (c *RedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return classify("set", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	return c.rdb.Close()
}

// classify splits remote faults into transient (timeout/connection) and
// fatal. Context cancellation passes through untouched so the caller can
// distinguish its own deadline from a store fault.
func classify(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, io.EOF),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.As(err, &netErr):
		return &TransientError{Op: op, Err: err}
	}

	return err
}
