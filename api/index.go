package handler

import (
	"net/http"
	"sync"

	"ecodash/config"
	"ecodash/di"
	"ecodash/shared/logger"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler is the serverless entrypoint. The service graph is built on the
// first request and reused afterwards.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.Configure(cfg)

		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("Invalid configuration")
		}

		app, _ := di.InitializeService()
		handler = app.Handler()
	})

	handler.ServeHTTP(w, r)
}
