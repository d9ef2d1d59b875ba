// Package redisclicks mirrors link click counters into Redis so they
// survive restarts. The in-memory link store stays the source of truth
// for serving; everything here is best effort.
package redisclicks

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for click tracking.
type Store struct {
	client *redis.Client
}

// NewStore creates a click store on an existing client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// RecordClick increments the counter for a link and stamps the click
// time.
func (s *Store) RecordClick(ctx context.Context, url string, at time.Time) error {
	pipe := s.client.Pipeline()
	pipe.Incr(ctx, CountKey(url))
	pipe.Set(ctx, LastClickedKey(url), at.Format(time.RFC3339), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}
	return nil
}

// Counts returns the stored counter for each of the given urls.
// Missing keys come back as 0.
func (s *Store) Counts(ctx context.Context, urls []string) (map[string]int64, error) {
	if len(urls) == 0 {
		return map[string]int64{}, nil
	}

	keys := make([]string, len(urls))
	for i, u := range urls {
		keys[i] = CountKey(u)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read click counts: %w", err)
	}

	counts := make(map[string]int64, len(urls))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			counts[urls[i]] = 0
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			n = 0
		}
		counts[urls[i]] = n
	}
	return counts, nil
}

// Forget drops the counters for a deleted link.
func (s *Store) Forget(ctx context.Context, url string) error {
	if err := s.client.Del(ctx, CountKey(url), LastClickedKey(url)).Err(); err != nil {
		return fmt.Errorf("failed to delete click keys: %w", err)
	}
	return nil
}
