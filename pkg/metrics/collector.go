package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OperationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pvetool_operation_total",
			Help: "Total number of snapshot and VM operations",
		},
		[]string{"operation", "status"},
	)

	TaskWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pvetool_task_wait_seconds",
			Help:    "Time spent waiting for cluster tasks to finish",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"operation"},
	)

	APIRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pvetool_api_request_total",
			Help: "Total number of management API requests",
		},
		[]string{"method", "status"},
	)
)

// RecordOperation increments the operation counter with a success/error label.
func RecordOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	OperationTotal.WithLabelValues(operation, status).Inc()
}
