package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess         = "success"
	OutcomeInvalidRequest  = "invalid_request"
	OutcomeNotConfigured   = "not_configured"
	OutcomeUpstreamFailure = "upstream_failure"
)

var (
	DiagnosisRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnosis_requests_total",
			Help: "Total number of diagnosis requests by schema and outcome",
		},
		[]string{"schema", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diagnosis_upstream_duration_seconds",
			Help:    "Duration of generation calls to the upstream model",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		},
		[]string{"model", "status"},
	)

	UpstreamInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "diagnosis_upstream_in_flight",
			Help: "Number of generation calls currently awaiting the upstream model",
		},
	)
)
