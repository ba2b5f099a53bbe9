package metrics

import "github.com/prometheus/client_golang/prometheus"

var ( //nolint:gochecknoglobals // Prometheus collectors
	// FetchRequestsTotal counts protocol API fetches by market and outcome
	// (success, no_positions, invalid_address, network_unreachable, api_error).
	FetchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aave_portfolio_fetch_requests_total",
			Help: "Number of protocol API fetches by network and outcome.",
		},
		[]string{"network", "outcome"},
	)

	// FetchDurationSeconds observes the wall time of one fetch, retry included.
	FetchDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aave_portfolio_fetch_duration_seconds",
			Help:    "Duration of protocol API fetches.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"network"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(FetchRequestsTotal, FetchDurationSeconds)
}
