package gateway_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/jwt"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/gateway/mocks"
	"hotel/internal/domains/gateway/model"
	"hotel/internal/domains/gateway/service"
	"hotel/internal/handlers/gateway"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/middleware"
)

type backends struct {
	auth, room, booking *httptest.Server
	hits                map[string]*atomic.Int32
}

func (b *backends) close() {
	b.auth.Close()
	b.room.Close()
	b.booking.Close()
}

func newBackends() *backends {
	b := &backends{hits: map[string]*atomic.Int32{
		constant.ServiceAuth:    {},
		constant.ServiceRoom:    {},
		constant.ServiceBooking: {},
	}}

	serve := func(name string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b.hits[name].Add(1)
			w.Header().Set("X-Upstream", name)
			w.Header().Set("Connection", "keep-alive")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"service":"` + name + `","path":"` + r.URL.Path + `","auth":"` + r.Header.Get("Authorization") + `"}`))
		}))
	}

	b.auth = serve(constant.ServiceAuth)
	b.room = serve(constant.ServiceRoom)
	b.booking = serve(constant.ServiceBooking)

	return b
}

func newRouter(t *testing.T, b *backends) (http.Handler, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 30
	cfg.JWT.RefreshExpireMin = 60
	cfg.Gateway.AuthURL = b.auth.URL
	cfg.Gateway.RoomURL = b.room.URL
	cfg.Gateway.BookingURL = b.booking.URL
	cfg.Gateway.UpstreamTimeoutSeconds = 5

	ot := otelMocks.NewOtel()
	jwtService := jwt.New(cfg)

	gw, err := service.New(cfg, service.NewClient(cfg), ot)
	require.NoError(t, err)

	handler := gateway.New(gw, ot)

	router := chi.NewRouter()
	router.Use(middleware.Gate(jwtService, ot))
	handler.Router(router)

	return router, jwtService
}

func TestProxy_ProtectedPathWithoutTokenNeverReachesBackend(t *testing.T) {
	b := newBackends()
	defer b.close()

	router, _ := newRouter(t, b)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Missing authorization header"}`, rec.Body.String())
	assert.Zero(t, b.hits[constant.ServiceBooking].Load())
}

func TestProxy_InvalidTokenRejected(t *testing.T) {
	b := newBackends()
	defer b.close()

	router, _ := newRouter(t, b)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, b.hits[constant.ServiceRoom].Load())
}

func TestProxy_AuthPathsArePublic(t *testing.T) {
	b := newBackends()
	defer b.close()

	router, _ := newRouter(t, b)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"service":"auth","path":"/api/auth/login","auth":""}`, rec.Body.String())
	assert.EqualValues(t, 1, b.hits[constant.ServiceAuth].Load())
}

func TestProxy_ForwardsTokenAndRelaysHeaders(t *testing.T) {
	b := newBackends()
	defer b.close()

	router, jwtService := newRouter(t, b)

	token, err := jwtService.GenerateAccessToken("u-1", "ana@example.com", constant.RoleCustomer)
	require.NoError(t, err)

	tests := []struct {
		path     string
		upstream string
	}{
		{"/api/bookings/42", constant.ServiceBooking},
		{"/api/rooms", constant.ServiceRoom},
		{"/api/protected/me", constant.ServiceAuth},
		{"/uploads/a.png", constant.ServiceRoom},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+token)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.upstream, rec.Header().Get("X-Upstream"))
			assert.Empty(t, rec.Header().Get("Connection"))
			assert.Empty(t, rec.Header().Get("Content-Length"))
			assert.Contains(t, rec.Body.String(), `"auth":"Bearer `+token+`"`)
		})
	}
}

func TestProxy_UnknownPath(t *testing.T) {
	b := newBackends()
	defer b.close()

	router, jwtService := newRouter(t, b)

	token, err := jwtService.GenerateAccessToken("u-1", "ana@example.com", constant.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestProxy_KeepsCompressedBodyIntact(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)

	route := model.Route{Prefix: "/api/rooms", Upstream: constant.ServiceRoom}

	var compressed strings.Builder
	zw := gzip.NewWriter(&compressed)
	_, _ = zw.Write([]byte(`[]`))
	_ = zw.Close()

	gw.EXPECT().Resolve("/api/rooms").Return(route, nil)
	gw.EXPECT().Forward(gomock.Any(), route, gomock.Any()).Return(&http.Response{
		StatusCode: http.StatusOK,
		Header: http.Header{
			"Content-Encoding":  {"gzip"},
			"Transfer-Encoding": {"chunked"},
		},
		Body: io.NopCloser(strings.NewReader(compressed.String())),
	}, nil)

	handler := gateway.New(gw, otelMocks.NewOtel())

	rec := httptest.NewRecorder()
	handler.Proxy(rec, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Empty(t, rec.Header().Get("Transfer-Encoding"))
	assert.Equal(t, compressed.String(), rec.Body.String())
}

func TestProxy_UpstreamDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)

	route := model.Route{Prefix: "/api/auth", Upstream: constant.ServiceAuth}

	gw.EXPECT().Resolve("/api/auth/login").Return(route, nil)
	gw.EXPECT().Forward(gomock.Any(), route, gomock.Any()).Return(nil, failure.UpstreamUnavailable("auth service unavailable"))

	handler := gateway.New(gw, otelMocks.NewOtel())

	rec := httptest.NewRecorder()
	handler.Proxy(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"auth service unavailable"}`, rec.Body.String())
}
