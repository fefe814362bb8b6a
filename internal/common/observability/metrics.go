// internal/common/observability/metrics.go
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_received_total",
			Help: "Total number of form submissions received",
		},
		[]string{"form_type"},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_rejected_total",
			Help: "Total number of form submissions rejected",
		},
		[]string{"form_type", "reason"},
	)

	SubmissionsAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_accepted_total",
			Help: "Total number of form submissions accepted and emailed",
		},
		[]string{"form_type"},
	)

	EmailDispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "form_email_dispatch_duration_seconds",
			Help: "Duration of notification email dispatch in seconds",
		},
		[]string{"form_type"},
	)

	DraftOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_draft_operations_total",
			Help: "Total number of draft store operations",
		},
		[]string{"operation", "status"},
	)
)
