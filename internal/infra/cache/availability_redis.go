package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
)

// AvailabilityCache keeps computed slots in one hash per employee so a single
// DEL invalidates every date and duration at once.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

// Connect parses url and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

func employeeKey(employeeID uint) string {
	return fmt.Sprintf("availability:%d", employeeID)
}

func slotField(date string, durationMinutes int) string {
	return fmt.Sprintf("%s|%d", date, durationMinutes)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	employeeID uint,
	date string,
	durationMinutes int,
) ([]domain.TimeSlot, bool, error) {

	raw, err := c.client.HGet(ctx, employeeKey(employeeID), slotField(date, durationMinutes)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false, fmt.Errorf("decoding cached slots: %w", err)
	}
	return slots, true, nil
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	employeeID uint,
	date string,
	durationMinutes int,
	slots []domain.TimeSlot,
) error {

	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("encoding slots: %w", err)
	}

	key := employeeKey(employeeID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, slotField(date, durationMinutes), raw)
	pipe.Expire(ctx, key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, employeeID uint) error {
	return c.client.Del(ctx, employeeKey(employeeID)).Err()
}

var _ domain.SlotCache = (*AvailabilityCache)(nil)
