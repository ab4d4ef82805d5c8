// Package metrics defines and registers all custom Prometheus metrics for
// the movie platform API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// init time via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "moviesystem"

// WatchlistMutationsTotal counts watchlist writes.
// Labels:
//   - op: "add" or "remove"
//   - result: "ok", "duplicate", or "error"
var WatchlistMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watchlist_mutations_total",
		Help:      "Total number of watchlist mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ReviewsWrittenTotal counts review writes.
// Label:
//   - op: "upsert" or "delete"
var ReviewsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_written_total",
		Help:      "Total number of review writes, by operation.",
	},
	[]string{"op"},
)

// UpstreamRequestsTotal counts requests forwarded to the metadata provider.
// Label:
//   - status: HTTP status returned by the provider, or "error" when the
//     request never completed
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of metadata provider requests, by response status.",
	},
	[]string{"status"},
)

// UpstreamRequestDuration measures provider round-trip latency.
var UpstreamRequestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of metadata provider requests.",
		Buckets:   prometheus.DefBuckets,
	},
)
