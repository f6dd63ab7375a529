// Package metrics defines the Prometheus collectors shared by every service.
// All collectors register with the default registry on import, and
// promhttp.Handler serves them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel"

// Enrichment outcomes.
const (
	OutcomeFound       = "found"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
	OutcomeCached      = "cached"
)

// HTTPRequestsTotal counts served requests.
// Labels:
//   - service: gateway, auth, room or booking
//   - method: HTTP method
//   - route: chi route pattern, or "unmatched"
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served.",
	},
	[]string{"service", "method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests from first byte to last byte written.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"service", "method", "route"},
)

// GatewayProxiedTotal counts requests relayed by the gateway.
// Labels:
//   - upstream: the backend the route table selected
//   - status: the relayed status code, or "unavailable" when the backend
//     could not be reached
var GatewayProxiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_proxied_total",
		Help:      "Total number of requests forwarded to a backend.",
	},
	[]string{"upstream", "status"},
)

var GatewayRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_rejected_total",
		Help:      "Total number of requests refused before forwarding.",
	},
	[]string{"reason"},
)

var GatewayUpstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_upstream_duration_seconds",
		Help:      "Round trip time of forwarded requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"upstream"},
)

// BookingConflictsTotal counts writes refused because the stay overlaps
// another booking of the same room.
var BookingConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Total number of booking writes rejected for overlapping dates.",
	},
	[]string{"operation"},
)

var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by mode.",
	},
	[]string{"mode"},
)

// RoomEnrichmentTotal counts room lookups made to decorate bookings.
var RoomEnrichmentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "room_enrichment_total",
		Help:      "Total number of room lookups, by outcome.",
	},
	[]string{"outcome"},
)
