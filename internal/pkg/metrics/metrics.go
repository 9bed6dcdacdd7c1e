// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Ledger ─────────────────────────────────────────────────────────────────

// ActionsRegistered counts ledger entries by mission polarity.
var ActionsRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "teampulse",
	Subsystem: "ledger",
	Name:      "actions_registered_total",
	Help:      "Total ledger entries registered, by mission type.",
}, []string{"type"})

// ActionsDeleted counts hard deleted ledger entries.
var ActionsDeleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "teampulse",
	Subsystem: "ledger",
	Name:      "actions_deleted_total",
	Help:      "Total ledger entries removed as corrections.",
})

// PointsGranted sums signed points registered, by mission polarity.
var PointsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "teampulse",
	Subsystem: "ledger",
	Name:      "points_granted_total",
	Help:      "Absolute points registered, by mission type.",
}, []string{"type"})

// ─── Archive ────────────────────────────────────────────────────────────────

// MonthsClosed counts close-month attempts by outcome.
var MonthsClosed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "teampulse",
	Subsystem: "archive",
	Name:      "months_closed_total",
	Help:      "Close-month attempts by outcome (ok, rejected, error).",
}, []string{"outcome"})

// ─── Events ─────────────────────────────────────────────────────────────────

// EventsPublished counts published domain events by type and outcome.
var EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "teampulse",
	Subsystem: "events",
	Name:      "published_total",
	Help:      "Domain events handed to the broker, by type and outcome.",
}, []string{"type", "outcome"})

// ─── Dashboard ──────────────────────────────────────────────────────────────

// DashboardBuildSeconds observes dashboard aggregation latency.
var DashboardBuildSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "teampulse",
	Subsystem: "dashboard",
	Name:      "build_seconds",
	Help:      "Time spent loading and aggregating one dashboard.",
	Buckets:   prometheus.DefBuckets,
})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests counts API requests by method, route pattern and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "teampulse",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests, by method, route and status code.",
}, []string{"method", "route", "status"})

// HTTPDuration observes request latency by route pattern.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "teampulse",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency, by method and route.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route"})
