package handler

import (
	"fmt"
	"hotel/config"
	"hotel/di/gateway"
	"hotel/shared/constant"
	"hotel/shared/logger"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	gatewayHandler http.Handler
	initOnce       sync.Once

	loadConfig = config.Get
	newGateway = func() (http.Handler, error) {
		server, err := gateway.InitializeService()
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		return server.Handler(), nil
	}
)

// Handler serves the gateway as a serverless function. The injector runs
// once per instance; until it succeeds every request gets a 503.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	initOnce.Do(func() {
		handler, err := initialize()
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize gateway")

			return
		}

		gatewayHandler = handler
	})

	if gatewayHandler == nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)

		return
	}

	gatewayHandler.ServeHTTP(w, r)
}

func initialize() (http.Handler, error) {
	cfg := loadConfig()

	logger.InitLogger()
	logger.ForService(cfg, constant.ServiceGateway)
	logger.SetLogLevel(cfg)

	if err := cfg.Validate(config.GatewayRequired...); err != nil {
		return nil, fmt.Errorf("invalid gateway configuration: %w", err)
	}

	return newGateway()
}
