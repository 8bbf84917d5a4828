package cache

import "github.com/prometheus/client_golang/prometheus"

var (
	memoHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "esprit",
		Subsystem: "cache",
		Name:      "memo_hits_total",
		Help:      "Reads served by the request-local memo.",
	})
	backendHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "esprit",
		Subsystem: "cache",
		Name:      "backend_hits_total",
		Help:      "Reads served by the cache backend.",
	})
	misses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "esprit",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Reads that found nothing, including backend failures.",
	})
)

// Collectors returns the cache metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{memoHits, backendHits, misses}
}
