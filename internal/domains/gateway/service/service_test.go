package service_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/gateway/model"
	"hotel/internal/domains/gateway/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
)

func newGateway(t *testing.T, authURL, roomURL, bookingURL string) service.Gateway {
	t.Helper()

	cfg := &config.Config{}
	cfg.Gateway.AuthURL = authURL
	cfg.Gateway.RoomURL = roomURL
	cfg.Gateway.BookingURL = bookingURL
	cfg.Gateway.UpstreamTimeoutSeconds = 5

	gateway, err := service.New(cfg, service.NewClient(cfg), mocks.NewOtel())
	require.NoError(t, err)

	return gateway
}

func TestResolve(t *testing.T) {
	gateway := newGateway(t, "http://auth", "http://room", "http://booking")

	route, err := gateway.Resolve("/api/protected/me")
	require.NoError(t, err)
	assert.Equal(t, constant.ServiceAuth, route.Upstream)

	_, err = gateway.Resolve("/api/nothing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestForward_PreservesRequest(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/bookings/7", r.URL.Path)
		assert.Equal(t, "status=pending&page=2", r.URL.RawQuery)
		assert.Equal(t, `{"status":"cancellation_requested"}`, string(body))
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "kept", r.Header.Get("X-Custom"))
		assert.NotEqual(t, "public.example.com", r.Host)

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer backend.Close()

	gateway := newGateway(t, "http://auth.invalid", "http://room.invalid", backend.URL)

	incoming := httptest.NewRequest(http.MethodPut, "http://public.example.com/api/bookings/7?status=pending&page=2", strings.NewReader(`{"status":"cancellation_requested"}`))
	incoming.Header.Set("Authorization", "Bearer abc")
	incoming.Header.Set("X-Custom", "kept")

	res, err := gateway.Forward(context.Background(), model.Route{Prefix: "/api/bookings", Upstream: constant.ServiceBooking}, incoming)
	require.NoError(t, err)

	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestForward_DoesNotFollowRedirects(t *testing.T) {
	followed := false

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/elsewhere" {
			followed = true
		}

		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer backend.Close()

	gateway := newGateway(t, backend.URL, backend.URL, backend.URL)

	res, err := gateway.Forward(context.Background(), model.Route{Upstream: constant.ServiceRoom}, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	require.NoError(t, err)

	defer res.Body.Close()

	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/elsewhere", res.Header.Get("Location"))
	assert.False(t, followed)
}

func TestForward_UpstreamUnavailable(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	unreachable := backend.URL
	backend.Close()

	gateway := newGateway(t, unreachable, unreachable, unreachable)

	res, err := gateway.Forward(context.Background(), model.Route{Upstream: constant.ServiceAuth}, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`)))

	assert.Nil(t, res)
	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	assert.Equal(t, "auth service unavailable", failure.GetMessage(err))
}

func TestForward_MissingUpstreamURL(t *testing.T) {
	gateway := newGateway(t, "", "", "")

	_, err := gateway.Forward(context.Background(), model.Route{Upstream: constant.ServiceBooking}, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
}

func TestProbe(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer healthy.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	gateway := newGateway(t, healthy.URL, failing.URL, healthy.URL)

	assert.NoError(t, gateway.Probe(context.Background(), constant.ServiceAuth))
	assert.Error(t, gateway.Probe(context.Background(), constant.ServiceRoom))
	assert.Error(t, gateway.Probe(context.Background(), "payments"))
}
