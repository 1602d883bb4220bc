package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"ecodash/infras/otel/mocks"
	"ecodash/shared/cache"
)

func TestRedisCache_IncrementUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewRedisCache(client, mocks.NewOtel())

	count, err := c.Increment(context.Background(), "ratelimit:192.0.2.1:test", 60)

	assert.Error(t, err)
	assert.Zero(t, count)
}
