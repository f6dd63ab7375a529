package router

import (
	"hotel/config"
	"hotel/transport/http/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsPath = "/metrics"

// Routable is a handler that mounts its own routes.
type Routable interface {
	Router(r chi.Router)
}

// DomainHandlers groups the handlers of one binary. Public handlers are
// mounted without the Guard chain; Protected ones behind it.
type DomainHandlers struct {
	Public    []Routable
	Protected []Routable
	Guard     []func(http.Handler) http.Handler
}

type Router struct {
	Config         *config.Config
	App            middleware.AppMiddleware
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
	)

	if corsCfg := r.Config.App.CORS; corsCfg.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsCfg.AllowedOrigins,
			AllowedMethods:   corsCfg.AllowedMethods,
			AllowedHeaders:   corsCfg.AllowedHeaders,
			AllowCredentials: corsCfg.AllowCredentials,
			MaxAge:           corsCfg.MaxAgeSeconds,
		}))
	}

	if r.App != nil {
		router.Use(r.App.Tracing, r.App.Metrics)
	}

	router.Handle(metricsPath, promhttp.Handler())

	for _, handler := range r.DomainHandlers.Public {
		handler.Router(router)
	}

	router.Group(func(group chi.Router) {
		group.Use(r.DomainHandlers.Guard...)

		for _, handler := range r.DomainHandlers.Protected {
			handler.Router(group)
		}
	})
}

func New(cfg *config.Config, app middleware.AppMiddleware, domainHandlers DomainHandlers) Router {
	return Router{
		Config:         cfg,
		App:            app,
		DomainHandlers: domainHandlers,
	}
}
