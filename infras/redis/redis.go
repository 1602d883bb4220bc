package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"ecodash/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	pingTimeout = 3 * time.Second
	// Rate limit counters are best effort, a slow Redis must not hold requests.
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
)

// Options maps the primary Redis settings onto client options.
func Options(cfg *config.Config) *goRedis.Options {
	primary := cfg.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:         net.JoinHostPort(primary.Host, primary.Port),
		Password:     primary.Password,
		DB:           primary.DB,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

// New opens a client for the rate limiter and verifies it answers a PING.
func New(cfg *config.Config) (*goRedis.Client, error) {
	opts := Options(cfg)
	client := goRedis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("pinging redis at %s: %w", opts.Addr, err)
	}

	log.Info().
		Int("db", opts.DB).
		Str("addr", opts.Addr).
		Msg("Connected to Redis")

	return client, nil
}
