// Package metrics defines and registers the custom Prometheus metrics of the
// license API. It is the single source of truth for metric names, labels, and
// help strings. promauto registers everything with the default registry on
// package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "license"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts POST /login calls.
// Label:
//   - outcome: "success", "invalid_credentials", "forbidden", "invalid_request" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// BasicAuthFailuresTotal counts protected requests rejected by BasicAuth or RBAC.
// Label:
//   - reason: "invalid_credentials", "forbidden" or "role_denied"
var BasicAuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "basic_auth_failures_total",
		Help:      "Total number of rejected credential re-presentations on protected routes.",
	},
	[]string{"reason"},
)

// ── Bookings ──────────────────────────────────────────────────────────────────

// BookingsCreatedTotal counts successful POST /learner-test-bookings calls.
// Label:
//   - replayed: "true" when an Idempotency-Key returned an existing booking
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of booking creations, split by idempotent replay.",
	},
	[]string{"replayed"},
)

// BookingResultUpdatesTotal counts result overwrites.
// Label:
//   - result: the result written (pending, passed, failed, absent)
var BookingResultUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_result_updates_total",
		Help:      "Total number of booking result updates, by result.",
	},
	[]string{"result"},
)

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency per route template.
// Labels:
//   - method: HTTP method
//   - route: echo route path (e.g. "/learner-test-bookings/:booking_id")
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
