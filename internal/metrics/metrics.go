package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PaymentsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fee_payments_recorded_total",
			Help: "Fee payments recorded, labelled by method and paid_by",
		},
		[]string{"method", "paid_by"},
	)

	PaymentsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fee_payments_rejected_total",
			Help: "Fee payments rejected by validation, labelled by reason",
		},
		[]string{"reason"},
	)

	DocumentsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fee_documents_generated_total",
			Help: "Financial documents generated, labelled by kind",
		},
		[]string{"kind"},
	)
)
