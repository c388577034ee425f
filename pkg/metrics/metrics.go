package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AccountOperations counts lifecycle operations by name (register|confirm|reset_password|setup_password)
	// and result (success|rejected|error).
	AccountOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workoutdiary_account_operations_total",
			Help: "Total number of account lifecycle operations",
		},
		[]string{"operation", "result"},
	)

	// NotificationFailures counts out-of-band deliveries that failed after the state change committed.
	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workoutdiary_notification_failures_total",
			Help: "Total number of failed account notifications",
		},
		[]string{"purpose"},
	)

	// ExpiredCodesPurged tracks one-time codes removed by the maintenance job.
	ExpiredCodesPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workoutdiary_expired_codes_purged_total",
			Help: "Total number of expired one-time codes purged",
		},
	)

	// MaintenanceRuns counts background job executions by job and result.
	MaintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workoutdiary_maintenance_runs_total",
			Help: "Total number of maintenance job runs",
		},
		[]string{"job", "result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workoutdiary_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
