package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RelayRequests counts relay operations by name and outcome (ok/error).
	RelayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bedrock_relay",
		Name:      "requests_total",
		Help:      "Relay operations by name and outcome.",
	}, []string{"operation", "outcome"})

	// CacheHits counts response cache hits.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bedrock_relay",
		Name:      "cache_hits_total",
		Help:      "Response cache hits.",
	})

	// CacheMisses counts response cache misses.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bedrock_relay",
		Name:      "cache_misses_total",
		Help:      "Response cache misses.",
	})

	// VendorErrors counts classified Bedrock failures by kind.
	VendorErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bedrock_relay",
		Name:      "vendor_errors_total",
		Help:      "Classified Bedrock failures by kind.",
	}, []string{"kind"})
)
