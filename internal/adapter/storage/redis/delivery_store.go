package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DeliveryStore implements ports.DeliveryStore using Redis SET NX.
type DeliveryStore struct {
	client *goredis.Client
	prefix string
}

// NewDeliveryStore creates a new Redis-backed delivery store.
func NewDeliveryStore(client *goredis.Client) *DeliveryStore {
	return &DeliveryStore{
		client: client,
		prefix: "delivery:",
	}
}

// Claim atomically records key for ttl.
// Returns true on first sight, false if the key is already held.
func (s *DeliveryStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.prefix+key, time.Now().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis delivery claim: %w", err)
	}
	return result == "OK", nil
}
