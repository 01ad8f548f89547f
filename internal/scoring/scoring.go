// Package scoring holds the two business operations behind the method
// dispatcher: the online score calculation and the per-client interests
// lookup. Both lean on the resilient cache store.
package scoring

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/scorepoint/scoring-gateway/internal/infrastructure/store"
	"github.com/scorepoint/scoring-gateway/internal/request"
)

// Store is the slice of the resilient store the handlers consume.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	CacheGet(ctx context.Context, key string) (string, error)
	CacheSet(ctx context.Context, key, value string, ttl time.Duration) error
}

const scoreTTL = time.Hour

// Score computes the online score for a validated request, consulting the
// cache first and writing the computed value back best-effort.
func Score(ctx context.Context, s Store, req *request.OnlineScore) (float64, error) {
	key := scoreKey(req)

	cached, err := s.CacheGet(ctx, key)
	if err != nil {
		return 0, err
	}
	if cached != "" {
		if score, perr := strconv.ParseFloat(cached, 64); perr == nil && score > 0 {
			return score, nil
		}
	}

	var score float64
	if req.Has("phone") {
		score += 1.5
	}
	if req.Has("email") {
		score += 1.5
	}
	if req.Has("birthday", "gender") {
		score += 1.5
	}
	if req.Has("first_name", "last_name") {
		score += 0.5
	}

	if err := s.CacheSet(ctx, key, strconv.FormatFloat(score, 'f', -1, 64), scoreTTL); err != nil {
		return 0, err
	}
	return score, nil
}

// scoreKey derives the cache key from a content hash of the identity
// attributes.
func scoreKey(req *request.OnlineScore) string {
	sum := md5.Sum([]byte(req.FirstName + req.LastName + req.Phone + req.Birthday))
	return "uid:" + hex.EncodeToString(sum[:])
}

const interestsTTL = 10 * time.Second

var interestPool = []string{
	"cars", "pets", "travel", "hi-tech", "sport", "music",
	"books", "tv", "cinema", "geek", "otus",
}

// Interests returns the interest list for one client id. The write is
// best-effort; the read goes through the must-know path so a truly
// unavailable store surfaces as an error.
func Interests(ctx context.Context, s Store, clientID int64) ([]string, error) {
	key := fmt.Sprintf("i:%d", clientID)

	payload, err := json.Marshal(pickInterests(2))
	if err != nil {
		return nil, err
	}
	if err := s.CacheSet(ctx, key, string(payload), interestsTTL); err != nil {
		return nil, err
	}

	raw, err := s.Get(ctx, key)
	if errors.Is(err, store.ErrCacheMiss) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var interests []string
	if err := json.Unmarshal([]byte(raw), &interests); err != nil {
		return nil, fmt.Errorf("scoring: decoding interests for %q: %w", key, err)
	}
	return interests, nil
}

func pickInterests(n int) []string {
	picks := make([]string, 0, n)
	for _, i := range rand.Perm(len(interestPool))[:n] {
		picks = append(picks, interestPool[i])
	}
	return picks
}
