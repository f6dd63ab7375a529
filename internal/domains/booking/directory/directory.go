// Package directory looks up rooms in the room service so bookings can be
// shown with the room's name, type and picture.
package directory

//go:generate go run go.uber.org/mock/mockgen -source=./directory.go -destination=../mocks/directory_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/identity"
	"hotel/shared/metrics"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	cacheRoom = "booking:room"
	roomsPath = "/api/rooms/"
)

// Outcome tells a missing room apart from a directory that did not answer.
type Outcome int

const (
	Unavailable Outcome = iota
	NotFound
	Found
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return metrics.OutcomeFound
	case NotFound:
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeUnavailable
	}
}

// Result is the answer to one lookup. Room is set only when Outcome is Found.
type Result struct {
	Room    model.Room
	Outcome Outcome
}

type Directory interface {
	Lookup(ctx context.Context, roomID string) Result
}

type directoryImpl struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	ttl     int
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(cfg *config.Config, client *http.Client, cache cache.RedisCache, otel otel.Otel) Directory {
	return &directoryImpl{
		client:  client,
		baseURL: strings.TrimRight(cfg.Booking.RoomDirectoryURL, "/"),
		timeout: time.Duration(cfg.Booking.RoomDirectoryTimeoutMs) * time.Millisecond,
		ttl:     cfg.Booking.RoomCacheTTL,
		cache:   cache,
		otel:    otel,
	}
}

// Lookup fetches a room, bounded by the configured timeout. The caller's
// Authorization header is forwarded. It never fails: transport errors,
// timeouts and unexpected statuses are reported as Unavailable.
func (d *directoryImpl) Lookup(ctx context.Context, roomID string) (res Result) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".directory.Lookup")
	defer scope.End()
	defer func() {
		scope.SetAttribute("room.outcome", res.Outcome.String())
	}()

	cacheKey := shared.BuildCacheKey(cacheRoom, roomID)

	if err := d.cache.Get(ctx, cacheKey, &res.Room); err == nil {
		metrics.RoomEnrichmentTotal.WithLabelValues(metrics.OutcomeCached).Inc()

		return Result{Room: res.Room, Outcome: Found}
	} else if !cache.IsMiss(err) {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to read room from cache")
	}

	res = d.fetch(ctx, roomID)
	metrics.RoomEnrichmentTotal.WithLabelValues(res.Outcome.String()).Inc()

	if res.Outcome == Found && d.ttl > 0 {
		room := res.Room

		go func() {
			c := context.WithoutCancel(ctx)

			if err := d.cache.Save(c, cacheKey, room, d.ttl); err != nil {
				log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to save room to cache")
			}
		}()
	}

	return res
}

func (d *directoryImpl) fetch(ctx context.Context, roomID string) Result {
	if d.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+roomsPath+url.PathEscape(roomID), nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to build room lookup request")

		return Result{Outcome: Unavailable}
	}

	if authorization := identity.Authorization(ctx); authorization != "" {
		request.Header.Set(constant.RequestHeaderAuthorization, authorization)
	}

	otelapi.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(request.Header))

	response, err := d.client.Do(request)
	if err != nil {
		log.Warn().Err(err).Str("room_id", roomID).Msg("room directory unavailable")

		return Result{Outcome: Unavailable}
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Result{Outcome: NotFound}
	default:
		log.Warn().Int("status", response.StatusCode).Str("room_id", roomID).Msg("unexpected room directory status")

		return Result{Outcome: Unavailable}
	}

	var room model.Room
	if err := json.NewDecoder(response.Body).Decode(&room); err != nil {
		log.Warn().Err(fmt.Errorf("failed to decode room %s: %w", roomID, err)).Msg("room directory unavailable")

		return Result{Outcome: Unavailable}
	}

	return Result{Room: room, Outcome: Found}
}
