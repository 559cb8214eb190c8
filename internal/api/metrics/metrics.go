// Package metrics defines and registers all custom Prometheus metrics for the
// store rating API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto; HTTP-level metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "store_rating"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// TokensRejectedTotal counts requests turned away by the auth middleware.
// Label:
//   - reason: "missing", "malformed", "invalid" or "revoked"
var TokensRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_rejected_total",
		Help:      "Total number of requests rejected for a missing or unusable bearer token.",
	},
	[]string{"reason"},
)

// ── Store and rating metrics ──────────────────────────────────────────────────

// StoresCreatedTotal counts stores created by administrators.
var StoresCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stores_created_total",
		Help:      "Total number of stores created.",
	},
)

// RatingsSubmittedTotal counts rating writes.
// Label:
//   - kind: "created" or "updated"
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of ratings written, by kind.",
	},
	[]string{"kind"},
)

// RatingValue tracks the distribution of submitted star values.
var RatingValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rating_value",
		Help:      "Distribution of submitted rating values.",
		Buckets:   prometheus.LinearBuckets(1, 1, 5), // 1, 2, 3, 4, 5
	},
)

// ObserveRating records one rating write of the given kind and value.
func ObserveRating(kind string, value int) {
	RatingsSubmittedTotal.WithLabelValues(kind).Inc()
	RatingValue.Observe(float64(value))
}
