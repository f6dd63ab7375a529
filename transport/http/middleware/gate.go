package middleware

import (
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/shared/metrics"
	"hotel/transport/http/response"
	"net/http"
	"strings"
)

const (
	healthPath     = "/healthz"
	authPathPrefix = "/api/auth"
	apiPathPrefix  = "/api"
)

// hasSegmentPrefix matches prefix itself or prefix followed by '/'.
func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// RequiresToken reports whether the gateway must see a valid access token
// before forwarding path. Health checks and the auth endpoints are public;
// everything else under /api is protected; other paths are not gated.
func RequiresToken(path string) bool {
	switch {
	case path == healthPath:
		return false
	case hasSegmentPrefix(path, authPathPrefix):
		return false
	default:
		return hasSegmentPrefix(path, apiPathPrefix)
	}
}

// Gate rejects protected requests without a valid access token before any
// backend is contacted. The request is passed on unchanged, Authorization
// header included, so backends verify the same credential.
func Gate(jwtService jwt.JWT, ot otel.Otel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !RequiresToken(request.URL.Path) {
				next.ServeHTTP(writer, request)

				return
			}

			_, scope := ot.NewScope(request.Context(), constant.OtelHandlerScopeName, "gate.middleware")

			if _, err := Authenticate(jwtService, request.Header.Get(constant.RequestHeaderAuthorization)); err != nil {
				metrics.GatewayRejectedTotal.WithLabelValues(err.Error()).Inc()
				scope.TraceError(err)
				scope.End()
				response.WithError(writer, err)

				return
			}

			scope.End()
			next.ServeHTTP(writer, request)
		})
	}
}
