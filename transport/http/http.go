package http

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/transport/http/response"
	"hotel/transport/http/router"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	readinessPath     = "/readyz"
	readHeaderTimeout = 10 * time.Second
)

// Cleanup releases a resource once the server has stopped accepting requests.
type Cleanup func(ctx context.Context) error

type HTTP struct {
	Config   *config.Config
	Router   router.Router
	state    atomic.Int32
	handler  http.Handler
	cleanups []Cleanup
}

func New(cfg *config.Config, r router.Router) *HTTP {
	return &HTTP{
		Config: cfg,
		Router: r,
	}
}

// OnShutdown registers fn to run during the cleanup period, in order.
func (h *HTTP) OnShutdown(fn Cleanup) {
	h.cleanups = append(h.cleanups, fn)
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Serve listens until SIGINT or SIGTERM, then drains and cleans up.
func (h *HTTP) Serve() {
	h.setup()

	server := &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverErr := make(chan error, 1)

	go func() {
		log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	case <-signals:
		h.shutdown(server)
	}
}

// Handler returns the routed handler without listening, for serverless use.
func (h *HTTP) Handler() http.Handler {
	h.setup()

	return h.handler
}

func (h *HTTP) setup() {
	if h.handler != nil {
		return
	}

	mux := chi.NewRouter()
	mux.Use(h.readinessGuard)
	h.Router.SetupRoutes(mux)

	h.handler = mux
	h.state.Store(int32(ServerStateReady))
}

// readinessGuard fails readiness probes once shutdown has begun so that load
// balancers stop routing here while in-flight requests finish.
func (h *HTTP) readinessGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == readinessPath && h.State() != ServerStateReady {
			response.WithPreparingShutdown(writer)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

func (h *HTTP) shutdown(server *http.Server) {
	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")

	if !h.Config.IsProduction() {
		shutdownConfig.GracePeriodSeconds = 0
	}

	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")
	h.state.Store(int32(ServerStateInGracePeriod))
	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")
	h.state.Store(int32(ServerStateInCleanupPeriod))

	timeout := time.Duration(max(shutdownConfig.CleanupPeriodSeconds, 1)) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server did not drain in time")
	}

	for _, cleanup := range h.cleanups {
		if err := cleanup(ctx); err != nil {
			log.Error().Err(err).Msg("Cleanup failed")
		}
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
