//go:build wireinject
// +build wireinject

package di

import (
	"bookingdesk/config"
	"bookingdesk/infras/otel"
	"bookingdesk/infras/postgres"
	"bookingdesk/infras/redis"
	"bookingdesk/shared/cache"
	"bookingdesk/transport/http"
	"bookingdesk/transport/http/middleware"
	"bookingdesk/transport/http/router"

	"bookingdesk/internal/domains/availability/engine"
	availabilityRepository "bookingdesk/internal/domains/availability/repository"
	availabilityService "bookingdesk/internal/domains/availability/service"
	calendarService "bookingdesk/internal/domains/calendar/service"
	availabilityHandler "bookingdesk/internal/handlers/availability"
	calendarHandler "bookingdesk/internal/handlers/calendar"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	config.GetPolicy,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var calendarDomain = wire.NewSet(
	provideEventSources,
	calendarService.New,
)

var availabilityDomain = wire.NewSet(
	engine.New,
	availabilityRepository.New,
	availabilityService.New,
)

var domains = wire.NewSet(
	calendarDomain,
	availabilityDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.New,
	calendarHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
