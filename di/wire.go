//go:build wireinject
// +build wireinject

package di

import (
	"seatq/config"
	"seatq/infras/jwt"
	"seatq/infras/kafka"
	"seatq/infras/otel"
	"seatq/infras/postgres"
	"seatq/infras/redis"
	"seatq/infras/s3"
	"seatq/internal/app"
	"seatq/internal/events"
	"seatq/permissions"
	"seatq/shared/cache"
	"seatq/transport/http"
	"seatq/transport/http/middleware"
	"seatq/transport/http/router"

	authService "seatq/internal/domains/auth/service"
	"seatq/internal/domains/seating/notifier"
	"seatq/internal/domains/seating/rebalancer"
	seatingService "seatq/internal/domains/seating/service"
	"seatq/internal/domains/seating/store"
	tableRepository "seatq/internal/domains/table/repository"
	tableService "seatq/internal/domains/table/service"
	waitlistRepository "seatq/internal/domains/waitlist/repository"

	authHandler "seatq/internal/handlers/auth"
	queueHandler "seatq/internal/handlers/queue"
	tableHandler "seatq/internal/handlers/table"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var seatingDomain = wire.NewSet(
	tableRepository.New,
	waitlistRepository.New,
	store.New,
	notifier.New,
	seatingService.New,
	rebalancer.New,
	events.New,
)

var domains = wire.NewSet(
	seatingDomain,
	tableService.New,
	authService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	queueHandler.New,
	tableHandler.New,
	router.New,
)

func InitializeService() (*app.App, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		app.New,
	)

	return &app.App{}, nil, nil
}
