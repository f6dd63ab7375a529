package handler

import (
	"hotel/config"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gatewayConfig(env, accessSecret string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = env
	cfg.JWT.AccessSecret = accessSecret
	cfg.Gateway.AuthURL = "http://auth:8001"
	cfg.Gateway.RoomURL = "http://room:8002"
	cfg.Gateway.BookingURL = "http://booking:8003"

	return cfg
}

func resetHandler(t *testing.T, cfg *config.Config) *bool {
	t.Helper()

	built := false
	prevConfig, prevGateway := loadConfig, newGateway

	gatewayHandler, initOnce = nil, sync.Once{}
	loadConfig = func() *config.Config { return cfg }
	newGateway = func() (http.Handler, error) {
		built = true

		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}), nil
	}

	t.Cleanup(func() {
		loadConfig, newGateway = prevConfig, prevGateway
		gatewayHandler, initOnce = nil, sync.Once{}
	})

	return &built
}

func TestHandler_ProductionWithoutAccessSecret(t *testing.T) {
	built := resetHandler(t, gatewayConfig("production", ""))

	for range 2 {
		rec := httptest.NewRecorder()
		Handler(rec, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	}

	assert.False(t, *built)
}

func TestHandler_ServesOnceConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "production with secrets", cfg: gatewayConfig("production", "access-secret")},
		{name: "development tolerates gaps", cfg: gatewayConfig("development", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built := resetHandler(t, tt.cfg)

			rec := httptest.NewRecorder()
			Handler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, http.StatusTeapot, rec.Code)
			assert.True(t, *built)
		})
	}
}
