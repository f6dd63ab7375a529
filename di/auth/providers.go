// Package auth wires the auth service.
package auth

import (
	"hotel/config"
	"hotel/di"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	authService "hotel/internal/domains/auth/service"
	userRepository "hotel/internal/domains/user/repository"
	authHandler "hotel/internal/handlers/auth"
	"hotel/internal/handlers/health"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"
	stdhttp "net/http"

	"github.com/google/wire"
)

const serviceName = constant.ServiceAuth

var infrastructures = wire.NewSet(
	postgres.New,
	jwt.New,
	provideOtel,
)

var middlewares = wire.NewSet(
	provideAppMiddleware,
	providePermissions,
	middleware.NewAuthRoleMiddleware,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var routing = wire.NewSet(
	provideHealth,
	authHandler.New,
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

func provideHealth(db *postgres.Connection) health.Handler {
	return health.New(map[string]health.Check{
		"postgres": di.PostgresCheck(db),
	})
}

func provideDomainHandlers(healthHandler health.Handler, handler authHandler.Handler, auth middleware.AuthRole) router.DomainHandlers {
	return router.DomainHandlers{
		Public:    []router.Routable{&healthHandler},
		Protected: []router.Routable{&handler},
		Guard:     []func(stdhttp.Handler) stdhttp.Handler{auth.Auth, auth.RBAC},
	}
}

func provideServer(cfg *config.Config, r router.Router, ot otel.Otel, db *postgres.Connection) *http.HTTP {
	server := http.New(cfg, r)
	di.Closers(server, ot, db, nil)

	return server
}
