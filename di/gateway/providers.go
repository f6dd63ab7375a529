// Package gateway wires the API gateway.
package gateway

import (
	"context"
	"hotel/config"
	"hotel/di"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	gatewayService "hotel/internal/domains/gateway/service"
	gatewayHandler "hotel/internal/handlers/gateway"
	"hotel/internal/handlers/health"
	"hotel/internal/handlers/swagger"
	"hotel/shared/constant"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"
	stdhttp "net/http"

	"github.com/google/wire"
)

const serviceName = constant.ServiceGateway

var upstreams = []string{constant.ServiceAuth, constant.ServiceRoom, constant.ServiceBooking}

var infrastructures = wire.NewSet(
	jwt.New,
	provideOtel,
)

var middlewares = wire.NewSet(
	provideAppMiddleware,
)

var gatewayDomain = wire.NewSet(
	gatewayService.NewClient,
	gatewayService.New,
)

var routing = wire.NewSet(
	provideHealth,
	swagger.New,
	gatewayHandler.New,
	provideDomainHandlers,
	router.New,
)

func provideOtel(cfg *config.Config) otel.Otel {
	return otel.New(cfg, serviceName)
}

func provideAppMiddleware(ot otel.Otel) middleware.AppMiddleware {
	return middleware.NewAppMiddleware(ot, serviceName)
}

// provideHealth reports the gateway ready only while every backend answers
// its own liveness probe.
func provideHealth(gateway gatewayService.Gateway) health.Handler {
	checks := make(map[string]health.Check, len(upstreams))

	for _, upstream := range upstreams {
		checks[upstream] = func(ctx context.Context) error {
			return gateway.Probe(ctx, upstream) //nolint:wrapcheck
		}
	}

	return health.New(checks)
}

func provideDomainHandlers(
	healthHandler health.Handler,
	swaggerHandler swagger.Handler,
	handler gatewayHandler.Handler,
	jwtService jwt.JWT,
	ot otel.Otel,
) router.DomainHandlers {
	return router.DomainHandlers{
		Public:    []router.Routable{&healthHandler, &swaggerHandler},
		Protected: []router.Routable{&handler},
		Guard:     []func(stdhttp.Handler) stdhttp.Handler{middleware.Gate(jwtService, ot)},
	}
}

func provideServer(cfg *config.Config, r router.Router, ot otel.Otel) *http.HTTP {
	server := http.New(cfg, r)
	di.Closers(server, ot, nil, nil)

	return server
}
