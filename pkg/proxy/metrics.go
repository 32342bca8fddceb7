package proxy

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	proxyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solar_proxy_requests_total",
		Help: "Total proxy requests by route and status",
	}, []string{"route", "status"})

	proxyRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solar_proxy_request_duration_seconds",
		Help:    "Proxy request duration in seconds by route",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 60},
	}, []string{"route"})
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestMetrics records per-route request counts and latency. The chi
// route pattern is resolved after serving, so parameterized routes
// aggregate under one label value.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		proxyRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		proxyRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
