package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/responsewriter"
	"newsroom/internal/observability/metrics"
)

// MetricsMiddleware records request count, duration, sizes and in-flight
// requests. Paths are normalized (/api/news/665f... -> /api/news/:id) to keep
// label cardinality bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		path := pathutil.NormalizePath(r.URL.Path)
		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(r.Method, path, rw.StatusCode(), time.Since(start), r.ContentLength, rw.BytesWritten())
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordRateLimited is the RateLimiter.OnLimited hook.
func RecordRateLimited(r *http.Request) {
	metrics.RecordRateLimited(pathutil.NormalizePath(r.URL.Path))
}
