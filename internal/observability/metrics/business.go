package metrics

import (
	"errors"
	"strconv"
	"time"

	"newsroom/internal/domain/entity"
)

// Operation results.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// ResultOf classifies err into one of the Result constants.
func ResultOf(err error) string {
	var vErr *entity.ValidationError
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, entity.ErrNotFound):
		return ResultNotFound
	case errors.As(err, &vErr):
		return ResultInvalid
	default:
		return ResultError
	}
}

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path string, status int, duration time.Duration, requestSize int64, responseSize int) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// RecordRateLimited counts a request rejected with 429.
func RecordRateLimited(path string) {
	HTTPRateLimitedTotal.WithLabelValues(path).Inc()
}

// RecordArticleOperation records one article service call.
func RecordArticleOperation(operation, result string, duration time.Duration) {
	ArticleOperationsTotal.WithLabelValues(operation, result).Inc()
	ArticleOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAssetUpload records one upload attempt; size is ignored for failures.
func RecordAssetUpload(provider string, err error, size int64, duration time.Duration) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	AssetUploadsTotal.WithLabelValues(provider, result).Inc()
	AssetUploadDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if err == nil && size > 0 {
		AssetUploadBytes.WithLabelValues(provider).Observe(float64(size))
	}
}

// SetCircuitBreakerState publishes a breaker state (0 closed, 1 half-open, 2 open).
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
