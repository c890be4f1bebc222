package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartlicense/license-api/internal/core/ports"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	// claimTTL bounds how long a crashed request can hold a key.
	claimTTL = 30 * time.Second
	claimed  = "pending"
)

// IdempotencyStore maps client-supplied Idempotency-Key values to the booking
// they created. Key format: idempotency:booking:<key>. The value is "pending"
// while the claiming request writes the booking, then the booking id.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// NewIdempotencyStore wraps client. Non-positive ttl falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Claim sets the key with SET NX. When the key exists, its value decides the
// outcome: a booking id to replay, or 0 when the owner has not finished.
func (s *IdempotencyStore) Claim(ctx context.Context, key string) (int64, bool, error) {
	k := idempotencyKey(key)
	ok, err := s.client.SetNX(ctx, k, claimed, claimTTL).Result()
	if err != nil {
		return 0, false, fmt.Errorf("idempotency claim: %w", err)
	}
	if ok {
		return 0, true, nil
	}

	val, err := s.client.Get(ctx, k).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// expired between the two calls; the next attempt can claim it
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("idempotency claim: %w", err)
	case val == claimed:
		return 0, false, nil
	}
	id, err := parseBookingID(val)
	if err != nil {
		return 0, false, err
	}
	return id, false, nil
}

// Remember replaces the claim with id for the full TTL.
func (s *IdempotencyStore) Remember(ctx context.Context, key string, id int64) error {
	if err := s.client.Set(ctx, idempotencyKey(key), strconv.FormatInt(id, 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func idempotencyKey(key string) string {
	return "idempotency:booking:" + key
}

func parseBookingID(val string) (int64, error) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("idempotency value %q is not a booking id", val)
	}
	return id, nil
}
