package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"ecodash/config"
	"ecodash/shared/constant"
	"ecodash/shared/timezone"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Configure applies the configured log level, stamps log lines in the app
// timezone and, in production, replaces the console writer with JSON on stdout.
func Configure(cfg *config.Config) {
	SetLogLevel(cfg)

	zerolog.TimestampFunc = timezone.Now

	if strings.EqualFold(cfg.Server.Env, constant.ServerEnvProduction) {
		UseWriter(os.Stdout)
	}

	if cfg.App.Name != "" {
		log.Logger = log.With().Str("service", cfg.App.Name).Logger()
	}
}

// UseWriter sends JSON log lines to w.
func UseWriter(w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
