package main

import (
	"ecodash/config"
	"ecodash/di"
	"ecodash/helper"
	"ecodash/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Ecodash Reservation API
// @version 1.0
// @description Parking space reservations for the building energy dashboard.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http, cleanup := di.InitializeService()
	defer cleanup()

	http.Serve()
}
