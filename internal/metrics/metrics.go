// Package metrics exposes Prometheus counters for the blocks and bytes
// the coder moves, so a long-running encode/decode process can be
// scraped rather than only logged.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// BlocksProcessed counts data/code blocks handled, labeled by
	// operation ("encode" or "decode").
	BlocksProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "erasurecore",
		Name:      "blocks_processed_total",
		Help:      "Number of data/code blocks processed.",
	}, []string{"operation"})

	// BytesProcessed counts bytes read from or written to the original
	// stream, labeled by operation.
	BytesProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "erasurecore",
		Name:      "bytes_processed_total",
		Help:      "Number of original-stream bytes processed.",
	}, []string{"operation"})

	// Failures counts encode/decode calls that returned an error,
	// labeled by operation and error kind (ValueError, NoInverse,
	// IOError, AllocationFailure).
	Failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "erasurecore",
		Name:      "failures_total",
		Help:      "Number of encode/decode calls that failed, by error kind.",
	}, []string{"operation", "kind"})
)

func init() {
	prometheus.MustRegister(BlocksProcessed, BytesProcessed, Failures)
}
