package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redisv9 "github.com/redis/go-redis/v9"
)

// RedisStore keeps the recent-cities list in redis as a JSON-encoded array
// under RecentKey.
type RedisStore struct {
	client *redisv9.Client
}

// NewRedisStore creates a store backed by the given redis client.
func NewRedisStore(client *redisv9.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Load returns the stored list. A missing key is an empty list, not an
// error.
func (s *RedisStore) Load(ctx context.Context) ([]string, error) {
	val, err := s.client.Get(ctx, RecentKey).Result()
	if errors.Is(err, redisv9.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading recent cities: %w", err)
	}

	var cities []string
	if err := json.Unmarshal([]byte(val), &cities); err != nil {
		return nil, fmt.Errorf("decoding recent cities: %w", err)
	}
	return cities, nil
}

// Save replaces the stored list.
func (s *RedisStore) Save(ctx context.Context, cities []string) error {
	data, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("encoding recent cities: %w", err)
	}
	if err := s.client.Set(ctx, RecentKey, data, 0).Err(); err != nil {
		return fmt.Errorf("saving recent cities: %w", err)
	}
	return nil
}
