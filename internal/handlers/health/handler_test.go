package health_test

import (
	"context"
	"errors"
	"hotel/internal/handlers/health"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func serve(handler health.Handler, path string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestLiveness(t *testing.T) {
	rec := serve(health.New(nil), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	rec := serve(health.New(map[string]health.Check{"postgres": ok, "redis": ok}), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"checks":{"postgres":"ok","redis":"ok"}}`, rec.Body.String())

	rec = serve(health.New(map[string]health.Check{"postgres": ok, "redis": down}), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"ok":false,"checks":{"postgres":"ok","redis":"connection refused"}}`, rec.Body.String())
}
