package config_test

import (
	"testing"

	"ecodash/config"

	"github.com/stretchr/testify/assert"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "secret"
	cfg.DB.Postgres.Write.Host = "localhost"

	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(*config.Config) {},
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *config.Config) { c.JWT.AccessSecret = "" },
			wantErr: config.ErrMissingJWTSecret,
		},
		{
			name:    "missing database host",
			mutate:  func(c *config.Config) { c.DB.Postgres.Write.Host = "" },
			wantErr: config.ErrMissingDatabaseHost,
		},
		{
			name:    "kafka without brokers",
			mutate:  func(c *config.Config) { c.Kafka.Enable = true },
			wantErr: config.ErrMissingKafkaBrokers,
		},
		{
			name: "kafka with brokers",
			mutate: func(c *config.Config) {
				c.Kafka.Enable = true
				c.Kafka.Brokers = []string{"localhost:9092"}
			},
		},
		{
			name:    "rate limiter without window",
			mutate: func(c *config.Config) {
				c.App.RateLimiter.Enable = true
				c.App.RateLimiter.MaxRequests = 10
			},
			wantErr: config.ErrInvalidRateLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestGetAppliesDefaults(t *testing.T) {
	cfg := config.Get()

	assert.NotEmpty(t, cfg.App.Timezone)
	assert.NotEmpty(t, cfg.DB.Postgres.MigrationTable)
	assert.Equal(t, "reservation-events", cfg.Kafka.Topics.Reservation)
}
