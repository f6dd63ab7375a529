// Package swagger serves the generated OpenAPI document and its UI.
package swagger

import (
	_ "hotel/docs" // registers the swagger spec

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

const docPath = "/swagger/doc.json"

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docPath)))
}
