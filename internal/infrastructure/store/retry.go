// Package store wraps the remote cache behind a bounded retry loop and a
// size-bounded local memoization of reads.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/scorepoint/scoring-gateway/internal/config"
)

// Store is the resilient cache store shared by all in-flight requests.
// Transient client faults are retried up to MaxRetries with linear backoff;
// the memoization table shadows successful CacheGet reads for the lifetime
// of the process or until evicted by its size bound. A memoized value may
// outlive the remote entry's TTL; that mismatch is deliberate.
type Store struct {
	client     Client
	maxRetries int
	baseDelay  time.Duration
	memo       *lru.Cache[string, string]
	logger     *slog.Logger
}

func New(client Client, cfg config.RetryConfig, logger *slog.Logger) (*Store, error) {
	memo, err := lru.New[string, string](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("store: building memoization table: %w", err)
	}

	return &Store{
		client:     client,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.BaseDelay,
		memo:       memo,
		logger:     logger,
	}, nil
}

// Get reads a key, retrying transient faults. Callers on this path must
// know when the cache is truly unavailable: exhausting the retry budget
// surfaces the last transient fault, absence surfaces ErrCacheMiss.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	return s.withRetry(ctx, "get", func(ctx context.Context) (string, error) {
		return s.client.Get(ctx, key)
	})
}

// CacheGet reads a key best-effort: the memoization table is consulted
// first, transient exhaustion and cache misses both yield "". A non-nil
// error here is a fatal store fault.
func (s *Store) CacheGet(ctx context.Context, key string) (string, error) {
	if v, ok := s.memo.Get(key); ok {
		return v, nil
	}

	v, err := s.withRetry(ctx, "cache_get", func(ctx context.Context) (string, error) {
		return s.client.Get(ctx, key)
	})
	switch {
	case err == nil:
		s.memo.Add(key, v)
		return v, nil
	case errors.Is(err, ErrCacheMiss):
		return "", nil
	case IsTransient(err):
		s.logger.Warn("cache read unavailable", "key", key, "error", err)
		return "", nil
	}
	return "", err
}

// CacheSet writes a key best-effort: transient exhaustion is swallowed, so
// callers must not treat the write as guaranteed. A non-nil error here is a
// fatal store fault.
func (s *Store) CacheSet(ctx context.Context, key, value string, ttl time.Duration) error {
	_, err := s.withRetry(ctx, "cache_set", func(ctx context.Context) (string, error) {
		return "", s.client.Set(ctx, key, value, ttl)
	})
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		s.logger.Warn("cache write dropped", "key", key, "error", err)
		return nil
	}
	return err
}

// withRetry runs op up to maxRetries times, sleeping attempt*baseDelay
// between attempts. The sleep is cancellable through ctx so a client
// disconnect aborts an in-flight retry loop. Non-transient errors return
// immediately.
func (s *Store) withRetry(ctx context.Context, op string, fn func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		if !IsTransient(err) {
			return "", err
		}
		lastErr = err

		s.logger.Debug("transient store fault",
			"op", op,
			"attempt", attempt+1,
			"error", err,
		)

		if attempt < s.maxRetries-1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * s.baseDelay):
			}
		}
	}

	return "", fmt.Errorf("store: %s retries exhausted after %d attempts: %w", op, s.maxRetries, lastErr)
}
