package health

import (
	"context"
	"hotel/transport/http/response"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	readinessTimeout = 3 * time.Second
	statusOK         = "ok"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

type Handler struct {
	checks map[string]Check
}

// New builds the liveness and readiness endpoints. checks are keyed by the
// dependency name reported in the readiness body.
func New(checks map[string]Check) Handler {
	return Handler{checks: checks}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

// Liveness godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} response.Health
// @Router /healthz [get]
func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, response.Health{OK: true})
}

// Readiness godoc
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} response.Health
// @Failure 503 {object} response.Health
// @Router /readyz [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}

	sort.Strings(names)

	results := make(map[string]string, len(names))
	healthy := true

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			results[name] = err.Error()
			healthy = false

			continue
		}

		results[name] = statusOK
	}

	if !healthy {
		response.WithUnhealthy(w, results)

		return
	}

	response.WithJSON(w, http.StatusOK, response.Health{OK: true, Checks: results})
}
