package di

import (
	"context"
	"time"

	"ecodash/config"
	"ecodash/infras/kafka"
	"ecodash/infras/otel"
	"ecodash/infras/postgres"
	"ecodash/infras/redis"
	"ecodash/shared/cache"

	"github.com/rs/zerolog/log"
)

const otelShutdownTimeout = 5 * time.Second

func provideDatabase(cfg *config.Config) (*postgres.Connection, func()) {
	conn := postgres.New(cfg)

	return conn, func() {
		if err := conn.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connections")
		}
	}
}

func provideOtel(cfg *config.Config) (otel.Otel, func()) {
	ot := otel.New(cfg)

	return ot, func() {
		ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()

		if err := ot.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	}
}

// provideKafka publishes reservation events only when Kafka is enabled.
func provideKafka(cfg *config.Config) (kafka.Client, func()) {
	if !cfg.Kafka.Enable {
		log.Info().Msg("Kafka disabled, reservation events will not be published")

		return kafka.Noop(), func() {}
	}

	client := kafka.New(cfg)

	return client, func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka writer")
		}
	}
}

// provideCache connects to Redis only when the rate limiter needs it.
func provideCache(cfg *config.Config, ot otel.Otel) (cache.RedisCache, func()) {
	if !cfg.App.RateLimiter.Enable {
		return nil, func() {}
	}

	client, err := redis.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	return cache.NewRedisCache(client, ot), func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis client")
		}
	}
}
