package upstream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solar_upstream_requests_total",
		Help: "Total upstream requests by service and outcome",
	}, []string{"service", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solar_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by service",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"service"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solar_upstream_errors_total",
		Help: "Total upstream errors by service and class",
	}, []string{"service", "class"})
)
