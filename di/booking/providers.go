// Package booking wires the booking service.
package booking

import (
	"hotel/config"
	"hotel/di"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/internal/domains/booking/directory"
	"hotel/internal/domains/booking/policy"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	bookingHandler "hotel/internal/handlers/booking"
	"hotel/internal/handlers/health"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"
	stdhttp "net/http"

	"github.com/google/wire"
	goRedis "github.com/redis/go-redis/v9"
)

const serviceName = constant.ServiceBooking

var infrastructures = wire.NewSet(
	postgres.New,
	redis.New,
	jwt.New,
	provideOtel,
	provideDirectoryClient,
)

var middlewares = wire.NewSet(
	provideAppMiddleware,
	providePermissions,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	wire.Value(policy.Default),
	directory.New,
	bookingRepository.New,
	bookingService.New,
)

var routing = wire.NewSet(
	provideHealth,
	bookingHandler.New,
	provideDomainHandlers,
	router.New,
)

func provideOtel(cfg *config.Config) otel.Otel {
	return otel.New(cfg, serviceName)
}

// provideDirectoryClient returns the client of room lookups. Each lookup is
// bounded by its own context deadline.
func provideDirectoryClient() *stdhttp.Client {
	return &stdhttp.Client{}
}

func provideAppMiddleware(ot otel.Otel) middleware.AppMiddleware {
	return middleware.NewAppMiddleware(ot, serviceName)
}

func providePermissions() (*permissions.PermissionData, error) {
	return permissions.Get(serviceName) //nolint:wrapcheck
}

func provideHealth(db *postgres.Connection, rdb *goRedis.Client) health.Handler {
	return health.New(map[string]health.Check{
		"postgres": di.PostgresCheck(db),
		"redis":    di.RedisCheck(rdb),
	})
}

func provideDomainHandlers(healthHandler health.Handler, handler bookingHandler.Handler, auth middleware.AuthRole) router.DomainHandlers {
	return router.DomainHandlers{
		Public:    []router.Routable{&healthHandler},
		Protected: []router.Routable{&handler},
		Guard:     []func(stdhttp.Handler) stdhttp.Handler{auth.Auth, auth.RBAC},
	}
}

func provideServer(cfg *config.Config, r router.Router, ot otel.Otel, db *postgres.Connection, rdb *goRedis.Client) *http.HTTP {
	server := http.New(cfg, r)
	di.Closers(server, ot, db, rdb)

	return server
}
