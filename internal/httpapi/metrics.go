package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	researchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "research_total",
			Help: "Total research requests by detected ATS and outcome.",
		},
		[]string{"ats", "outcome"}, // outcome: ok, invalid_input, error
	)

	researchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "research_duration_seconds",
			Help:    "End-to-end duration of one research pipeline run.",
			Buckets: []float64{0.5, 1, 2, 4, 8, 15, 30},
		},
	)
)
