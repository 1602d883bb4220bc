package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"ecodash/config"
	"ecodash/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()
	format := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = format
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("store unavailable"))

	assert.Contains(t, buf.String(), "store unavailable")
}

func TestSetLogLevel(t *testing.T) {
	restore(t)

	tests := []struct {
		name     string
		logLevel string
		expected zerolog.Level
	}{
		{name: "debug", logLevel: "debug", expected: zerolog.DebugLevel},
		{name: "info", logLevel: "info", expected: zerolog.InfoLevel},
		{name: "warn", logLevel: "warn", expected: zerolog.WarnLevel},
		{name: "error", logLevel: "error", expected: zerolog.ErrorLevel},
		{name: "disabled", logLevel: "disabled", expected: zerolog.Disabled},
		{name: "invalid falls back to trace", logLevel: "loud", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestUseWriter(t *testing.T) {
	restore(t)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger.UseWriter(&buf)

	log.Info().Str("space_id", "A1").Msg("reservation scheduled")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "reservation scheduled", line["message"])
	assert.Equal(t, "A1", line["space_id"])
	assert.Contains(t, line, "time")
}

func TestConfigure(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.LogLevel = "warn"
	cfg.App.Name = "ecodash"

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.Configure(cfg)
	log.Warn().Msg("draining")

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), `"service":"ecodash"`)
}
