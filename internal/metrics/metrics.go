package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staybook_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staybook_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// PipelineOutcomes counts how each pipeline run ended:
	// validation_error, business_error, success or fault.
	PipelineOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staybook_pipeline_outcomes_total",
			Help: "Total number of request pipeline results by kind",
		},
		[]string{"result"},
	)

	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staybook_webhook_events_total",
			Help: "Total number of webhook events by routing decision",
		},
		[]string{"event", "todo", "action"},
	)
)

const (
	ResultValidationError = "validation_error"
	ResultBusinessError   = "business_error"
	ResultSuccess         = "success"
	ResultFault           = "fault"
)
