package redis_test

import (
	"testing"

	"ecodash/config"
	"ecodash/infras/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Redis.Primary.Host = "cache.internal"
	cfg.Cache.Redis.Primary.Port = "6380"
	cfg.Cache.Redis.Primary.Password = "secret"
	cfg.Cache.Redis.Primary.DB = 2

	opts := redis.Options(cfg)

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Positive(t, opts.ReadTimeout)
}

func TestNewUnreachable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Redis.Primary.Host = "127.0.0.1"
	cfg.Cache.Redis.Primary.Port = "1"

	client, err := redis.New(cfg)

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
