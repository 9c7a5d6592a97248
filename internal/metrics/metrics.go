package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	StoreRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_store_requests_total",
			Help: "Remote store calls by operation, table and outcome",
		},
		[]string{"op", "table", "outcome"}, // select|insert|update|delete , ok|error
	)

	StoreRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_store_request_duration_seconds",
			Help:    "Latency of remote store calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "table"},
	)

	GatewayFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_gateway_failures_total",
			Help: "Gateway operations that failed, by operation and error kind",
		},
		[]string{"operation", "kind"}, // fetch_error|persistence_error|validation_error
	)

	ViewInvalidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_view_invalidations_total",
			Help: "Cached views invalidated by mutations",
		},
		[]string{"path"},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		StoreRequestsTotal,
		StoreRequestDuration,
		GatewayFailuresTotal,
		ViewInvalidationsTotal,
	)
}
