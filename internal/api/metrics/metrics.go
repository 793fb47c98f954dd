// Package metrics defines all custom Prometheus metrics for the Wophi API.
// It is the single source of truth for metric names, labels, and help
// strings; registration happens automatically via promauto at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wophi"

// ── Alma client metrics ───────────────────────────────────────────────────────

// AlmaRequestsTotal counts outbound calls to the Alma identity service.
// Labels:
//   - method: HTTP method of the call (POST/GET/PATCH/DELETE)
//   - outcome: "ok", "remote_error", or "transport_error"
var AlmaRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alma_requests_total",
		Help:      "Total number of outbound Alma requests, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// AlmaRequestDuration measures the latency of a single Alma call.
var AlmaRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "alma_request_duration_seconds",
		Help:      "Duration of outbound Alma requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts successful registrations (remote + local write).
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// UsersDeletedTotal counts completed account deletions.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted.",
	},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - status: the initial task status (e.g. "pending")
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by initial status.",
	},
	[]string{"status"},
)
