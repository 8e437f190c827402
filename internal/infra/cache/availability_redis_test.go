package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "availability:12", employeeKey(12))
	assert.Equal(t, "2026-10-19|45", slotField("2026-10-19", 45))
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "http://not-redis")
	assert.Error(t, err)
}

func TestUnreachableServerSurfacesErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewAvailabilityCache(client, time.Minute)
	ctx := context.Background()

	_, hit, err := c.Get(ctx, 1, "2026-10-19", 30)
	require.Error(t, err)
	assert.False(t, hit)

	assert.Error(t, c.Invalidate(ctx, 1))
}
