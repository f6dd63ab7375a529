package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/gateway/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/metrics"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	healthPath        = "/healthz"
	statusUnavailable = "unavailable"
	msgRouteNotFound  = "Not Found"
	msgUpstreamSuffix = " service unavailable"
	headerHost        = "Host"
	probeTimeout      = 2 * time.Second
)

var errUnhealthy = errors.New("upstream unhealthy")

type Gateway interface {
	// Resolve picks the backend for path, or fails with a 404.
	Resolve(path string) (model.Route, error)
	// Forward replays request against the route's backend and returns its
	// response as is. Redirects are not followed. The caller closes the body.
	Forward(ctx context.Context, route model.Route, request *http.Request) (*http.Response, error)
	// Probe checks the health endpoint of one backend.
	Probe(ctx context.Context, upstream string) error
}

type serviceImpl struct {
	client    *http.Client
	routes    []model.Route
	upstreams map[string]*url.URL
	otel      otel.Otel
}

// New builds the gateway from the three backend URLs in cfg.
func New(cfg *config.Config, client *http.Client, otel otel.Otel) (Gateway, error) {
	upstreams := map[string]*url.URL{}

	for name, raw := range map[string]string{
		constant.ServiceAuth:    cfg.Gateway.AuthURL,
		constant.ServiceRoom:    cfg.Gateway.RoomURL,
		constant.ServiceBooking: cfg.Gateway.BookingURL,
	} {
		base, err := url.Parse(strings.TrimRight(raw, "/"))
		if err != nil {
			return nil, fmt.Errorf("invalid %s upstream url: %w", name, err)
		}

		upstreams[name] = base
	}

	return &serviceImpl{
		client:    client,
		routes:    model.Routes,
		upstreams: upstreams,
		otel:      otel,
	}, nil
}

// NewClient returns the HTTP client used for upstream calls. It relays
// redirects instead of following them.
func NewClient(cfg *config.Config) *http.Client {
	return &http.Client{
		Timeout: time.Duration(cfg.Gateway.UpstreamTimeoutSeconds) * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s *serviceImpl) Resolve(path string) (model.Route, error) {
	route, ok := model.Match(s.routes, path)
	if !ok {
		metrics.GatewayRejectedTotal.WithLabelValues("no_route").Inc()

		return route, failure.NotFound(msgRouteNotFound) // nolint:wrapcheck
	}

	return route, nil
}

func (s *serviceImpl) Forward(ctx context.Context, route model.Route, request *http.Request) (res *http.Response, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".gateway.Forward")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"gateway.upstream": route.Upstream,
		"http.method":      request.Method,
		"http.path":        request.URL.Path,
	})

	outgoing, err := s.outgoing(ctx, route, request)
	if err != nil {
		return nil, err
	}

	started := time.Now()

	res, err = s.client.Do(outgoing)

	metrics.GatewayUpstreamDuration.WithLabelValues(route.Upstream).Observe(time.Since(started).Seconds())

	if err != nil {
		metrics.GatewayProxiedTotal.WithLabelValues(route.Upstream, statusUnavailable).Inc()
		log.Error().Err(err).Str("upstream", route.Upstream).Str("path", request.URL.Path).Msg("upstream request failed")

		return nil, failure.UpstreamUnavailable(route.Upstream + msgUpstreamSuffix) // nolint:wrapcheck
	}

	metrics.GatewayProxiedTotal.WithLabelValues(route.Upstream, strconv.Itoa(res.StatusCode)).Inc()
	scope.SetAttribute("http.status_code", res.StatusCode)

	return res, nil
}

// outgoing copies method, path, query, headers and body of request onto the
// backend address. Host is left to the backend URL.
func (s *serviceImpl) outgoing(ctx context.Context, route model.Route, request *http.Request) (*http.Request, error) {
	base, ok := s.upstreams[route.Upstream]
	if !ok || base.Host == "" {
		return nil, failure.UpstreamUnavailable(route.Upstream + msgUpstreamSuffix) // nolint:wrapcheck
	}

	target := *base
	target.Path = base.Path + request.URL.Path
	target.RawPath = ""

	if request.URL.RawPath != "" {
		target.RawPath = base.EscapedPath() + request.URL.RawPath
	}

	target.RawQuery = request.URL.RawQuery

	body := request.Body
	if request.ContentLength == 0 {
		body = http.NoBody
	}

	outgoing, err := http.NewRequestWithContext(ctx, request.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}

	outgoing.Header = request.Header.Clone()
	outgoing.Header.Del(headerHost)
	outgoing.ContentLength = request.ContentLength

	otelapi.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(outgoing.Header))

	return outgoing, nil
}

func (s *serviceImpl) Probe(ctx context.Context, upstream string) error {
	base, ok := s.upstreams[upstream]
	if !ok {
		return fmt.Errorf("unknown upstream %s", upstream)
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String()+healthPath, nil)
	if err != nil {
		return fmt.Errorf("failed to build probe request: %w", err)
	}

	res, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", upstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s answered %d", errUnhealthy, upstream, res.StatusCode)
	}

	return nil
}
