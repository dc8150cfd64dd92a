package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotg_store_operations_total",
			Help: "Total number of state store operations by name and result.",
		},
		[]string{"op", "result"},
	)

	persistOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotg_persist_outcomes_total",
			Help: "Persistence attempts by outcome (ok, degraded, failed).",
		},
		[]string{"outcome"},
	)
)

// Init registers the application collectors with the default registry.
func Init() {
	prometheus.MustRegister(storeOpsTotal, persistOutcomes)
}

// CountOp records a completed store operation.
func CountOp(op, result string) {
	storeOpsTotal.WithLabelValues(op, result).Inc()
}

// CountPersist records the outcome of a persistence attempt.
func CountPersist(outcome string) {
	persistOutcomes.WithLabelValues(outcome).Inc()
}
