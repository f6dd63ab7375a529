// Package room wires the room service.
package room

import (
	"hotel/config"
	"hotel/di"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	"hotel/internal/handlers/health"
	roomHandler "hotel/internal/handlers/room"
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

const serviceName = constant.ServiceRoom

var infrastructures = wire.NewSet(
	postgres.New,
	redis.New,
	s3.New,
	jwt.New,
	provideOtel,
)

var middlewares = wire.NewSet(
	provideAppMiddleware,
	providePermissions,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var routing = wire.NewSet(
	provideHealth,
	roomHandler.New,
	provideDomainHandlers,
	router.New,
)

func provideOtel(cfg *config.Config) otel.Otel {
	return otel.New(cfg, serviceName)
}

func provideAppMiddleware(ot otel.Otel) middleware.AppMiddleware {
	return middleware.NewAppMiddleware(ot, serviceName)
}

func providePermissions() (*permissions.PermissionData, error) {
	return permissions.Get(serviceName) //nolint:wrapcheck
}

func provideHealth(db *postgres.Connection, rdb *goRedis.Client, store s3.S3) health.Handler {
	return health.New(map[string]health.Check{
		"postgres": di.PostgresCheck(db),
		"redis":    di.RedisCheck(rdb),
		"s3":       store.Ping,
	})
}

func provideDomainHandlers(healthHandler health.Handler, handler roomHandler.Handler, auth middleware.AuthRole) router.DomainHandlers {
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
