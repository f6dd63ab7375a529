package gateway

import (
	"errors"
	"hotel/infras/otel"
	"hotel/internal/domains/gateway/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Response headers describing the backend's framing. The gateway writes its
// own framing, so these are never relayed.
var framingHeaders = []string{
	"Content-Length",
	"Transfer-Encoding",
	"Connection",
}

const headerContentEncoding = "Content-Encoding"

type Handler struct {
	service service.Gateway
	otel    otel.Otel
}

func New(service service.Gateway, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Handle("/*", http.HandlerFunc(handler.Proxy))
}

// Proxy relays the request to the backend owning its path.
// @Summary Proxy to backend services
// @Description Routes /api/auth and /api/protected to auth, /api/rooms, /api/upload-image and /uploads to room, /api/bookings to booking. Every /api path except /api/auth needs a bearer access token.
// @Tags Gateway
// @Success 200
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /api/{path} [get]
// @Security BearerAuth
func (handler *Handler) Proxy(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Proxy")
	defer scope.End()

	route, err := handler.service.Resolve(request.URL.Path)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	upstream, err := handler.service.Forward(ctx, route, request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}
	defer upstream.Body.Close()

	relay(writer, upstream)
}

func relay(writer http.ResponseWriter, upstream *http.Response) {
	header := writer.Header()

	for key, values := range upstream.Header {
		header[key] = append([]string(nil), values...)
	}

	for _, key := range framingHeaders {
		header.Del(key)
	}

	if upstream.Uncompressed {
		header.Del(headerContentEncoding)
	}

	writer.WriteHeader(upstream.StatusCode)

	if _, err := io.Copy(writer, upstream.Body); err != nil && !errors.Is(err, http.ErrBodyNotAllowed) {
		log.Warn().Err(err).Int("status", upstream.StatusCode).Msg("failed to relay upstream body")
	}
}
