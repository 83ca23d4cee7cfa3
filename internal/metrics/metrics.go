// Package metrics exposes Prometheus collectors for ledger operations.
// Collectors register against the default registry; the embedding process
// decides how (and whether) to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operations counts ledger mutations by operation name and outcome.
var Operations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "pokerledger",
		Name:      "operations_total",
		Help:      "Ledger operations by operation name and outcome.",
	},
	[]string{"operation", "outcome"},
)

// Observe records one operation outcome.
func Observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	Operations.WithLabelValues(operation, outcome).Inc()
}
