//go:build wireinject
// +build wireinject

package di

import (
	"ecodash/config"
	"ecodash/infras/jwt"
	"ecodash/permissions"
	"ecodash/shared/clock"
	"ecodash/transport/http"
	"ecodash/transport/http/middleware"
	"ecodash/transport/http/router"

	reservationRepository "ecodash/internal/domains/reservation/repository"
	reservationService "ecodash/internal/domains/reservation/service"

	"github.com/google/wire"

	authHandler "ecodash/internal/handlers/auth"
	reservationHandler "ecodash/internal/handlers/reservation"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	provideDatabase,
	provideOtel,
	provideKafka,
	jwt.New,
	clock.NewRealClock,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	provideCache,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	reservationHandler.New,
	authHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func()) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
