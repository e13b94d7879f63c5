// Package metrics defines and registers all custom Prometheus metrics for
// the EduInsight console client. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register against the default registry at import time via promauto;
// embedders can expose or push them however they like.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "educonsole"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// RequestsTotal counts completed API calls.
// Labels:
//   - method: HTTP method
//   - path: the fixed endpoint path (no query string)
//   - status: numeric HTTP status, or "error" when the request never got one
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of API calls issued by the gateway.",
	},
	[]string{"method", "path", "status"},
)

// RequestDuration measures wall time per API call.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of API calls from dispatch to settlement.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// RequestsInFlight mirrors the busy indicator: the number of calls currently
// in flight. The loading overlay is visible exactly while this is > 0.
var RequestsInFlight = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "api_requests_in_flight",
		Help:      "Number of API calls currently in flight.",
	},
)

// DownloadsTotal counts report downloads.
// Label:
//   - result: "ok" or "error"
var DownloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloads_total",
		Help:      "Total number of report downloads, by result.",
	},
	[]string{"result"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// ActionRunsTotal counts dashboard action executions.
// Labels:
//   - role: the role tag the action belongs to
//   - action: the action label
//   - result: "ok", "error" or "stale" (completion discarded by the
//     generation guard)
var ActionRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "action_runs_total",
		Help:      "Total number of dashboard action runs, by outcome.",
	},
	[]string{"role", "action", "result"},
)
