// Package metrics exposes the Prometheus registry and HTTP handler for
// the proxy. All metrics are defined in their respective packages
// (proxy, cache, upstream, quota) via promauto to keep ownership with
// the code that records them; this package documents them in one place.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the Prometheus registry used by the proxy.
// All metrics register here automatically via promauto.
var Registry = prometheus.DefaultRegisterer

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Request Metrics (pkg/proxy):
//   - solar_proxy_requests_total{route, status} (Counter): Requests by route and HTTP status
//   - solar_proxy_request_duration_seconds{route} (Histogram): Request duration by route
//
// Cache Metrics (pkg/cache):
//   - solar_cache_hits_total (Counter): Cache hits
//   - solar_cache_misses_total (Counter): Cache misses
//   - solar_cache_written_bytes (Gauge): Cumulative bytes written
//   - solar_cache_errors_total{operation} (Counter): Cache operation errors
//
// Upstream Metrics (pkg/upstream):
//   - solar_upstream_requests_total{service, status} (Counter): Upstream calls by outcome
//   - solar_upstream_request_duration_seconds{service} (Histogram): Upstream call duration
//   - solar_upstream_errors_total{service, class} (Counter): Upstream errors by class
//
// Quota Metrics (pkg/quota):
//   - solar_quota_rejections_total (Counter): Requests rejected by the fixed quota
//   - solar_quota_errors_total (Counter): Quota counter errors (failed open)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   rate(solar_cache_hits_total[5m]) /
//   (rate(solar_cache_hits_total[5m]) + rate(solar_cache_misses_total[5m]))
//
//   # Upstream Error Rate
//   rate(solar_upstream_errors_total[5m])
//
//   # P95 Proxy Latency
//   histogram_quantile(0.95, rate(solar_proxy_request_duration_seconds_bucket[5m]))
