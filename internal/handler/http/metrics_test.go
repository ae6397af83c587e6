package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/observability/metrics"
)

func TestMetricsMiddleware_PathNormalization(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("OK"))
	}))

	for _, p := range []string{"/api/news/665f1c2ab1e4a3d9c0f1e2d3", "/api/news/665f1c2ab1e4a3d9c0f1e2d4", "/api/news/missing"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/news", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/news/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/news/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/news", "200")))
}

func TestMetricsMiddleware_UnknownPathsShareOneSeries(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := MetricsMiddleware(http.NotFoundHandler())
	for i := 0; i < 100; i++ {
		p := "/scan/" + strconv.Itoa(i) + "/admin.php"
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestsTotal))
	assert.Equal(t, 100.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", pathutil.OtherTemplate, "404")))
}

func TestMetricsHandler_Exposes(t *testing.T) {
	metrics.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200").Inc()

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRecordRateLimited(t *testing.T) {
	metrics.HTTPRateLimitedTotal.Reset()
	RecordRateLimited(httptest.NewRequest(http.MethodPost, "/api/news/abc", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRateLimitedTotal.WithLabelValues("/api/news/:id")))
}
