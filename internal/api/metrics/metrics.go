// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts credential exchanges.
// Label:
//   - result: "success", "rejected" (backend refusal or network failure),
//     or "missing_credentials" (local validation, no network call made)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of credential exchange attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts lazy refresh attempts triggered by session reads.
// Label:
//   - result: "success", "failure", or "superseded" (lost the generation
//     compare-and-swap to a newer credential)
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of access token refresh attempts, by result.",
	},
	[]string{"result"},
)

// SignoutsTotal counts session teardowns.
// Label:
//   - reason: "logout" (explicit), "refresh_failed" (flagged session seen at
//     request build time), or "unauthorized" (401 retry exhausted)
var SignoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signouts_total",
		Help:      "Total number of session teardowns, by reason.",
	},
	[]string{"reason"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartOperationsTotal counts cart mutations.
// Label:
//   - op: "add", "merge", "change_quantity", "remove", "clear",
//     "apply_coupon", "remove_coupon"
var CartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersSubmittedTotal counts order submissions forwarded to the backend.
// Label:
//   - result: "success" or "failure"
var OrdersSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of order submissions, by result.",
	},
	[]string{"result"},
)

// ── Backend client metrics ────────────────────────────────────────────────────

// BackendRequestDuration measures upstream API call latency.
// Labels:
//   - endpoint: logical endpoint name (e.g. "auth_login", "order_create")
//   - status: HTTP status code, or "error" when no response arrived
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the upstream backend API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)
