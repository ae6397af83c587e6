package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"

	"newsroom/internal/domain/entity"
)

func TestResultOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ResultSuccess},
		{name: "not found", err: fmt.Errorf("get: %w", entity.ErrNotFound), want: ResultNotFound},
		{name: "validation", err: &entity.ValidationError{Field: "title", Message: "is required"}, want: ResultInvalid},
		{name: "other", err: errors.New("boom"), want: ResultError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultOf(tt.err))
		})
	}
}

func TestRecordArticleOperation(t *testing.T) {
	before := testutil.ToFloat64(ArticleOperationsTotal.WithLabelValues("create", ResultSuccess))
	RecordArticleOperation("create", ResultSuccess, 10*time.Millisecond)
	after := testutil.ToFloat64(ArticleOperationsTotal.WithLabelValues("create", ResultSuccess))
	assert.Equal(t, before+1, after)
}

func TestRecordAssetUpload(t *testing.T) {
	okBefore := testutil.ToFloat64(AssetUploadsTotal.WithLabelValues("test", ResultSuccess))
	errBefore := testutil.ToFloat64(AssetUploadsTotal.WithLabelValues("test", ResultError))

	RecordAssetUpload("test", nil, 2048, time.Second)
	RecordAssetUpload("test", errors.New("host down"), 2048, time.Second)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(AssetUploadsTotal.WithLabelValues("test", ResultSuccess)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(AssetUploadsTotal.WithLabelValues("test", ResultError)))
}

// histogram reads the current sample count and sum of one histogram child.
func histogram(t *testing.T, obs prometheus.Observer) (uint64, float64) {
	t.Helper()
	m, ok := obs.(prometheus.Metric)
	if !ok {
		t.Fatalf("%T is not a prometheus.Metric", obs)
	}
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return pb.GetHistogram().GetSampleCount(), pb.GetHistogram().GetSampleSum()
}

func TestRecordAssetUpload_SizeOnlyOnSuccess(t *testing.T) {
	countBefore, sumBefore := histogram(t, AssetUploadBytes.WithLabelValues("size-test"))

	RecordAssetUpload("size-test", nil, 4096, time.Millisecond)
	RecordAssetUpload("size-test", errors.New("host down"), 4096, time.Millisecond)

	count, sum := histogram(t, AssetUploadBytes.WithLabelValues("size-test"))
	assert.Equal(t, countBefore+1, count)
	assert.Equal(t, sumBefore+4096, sum)
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/news/:id", "404"))
	RecordHTTPRequest("GET", "/api/news/:id", 404, time.Millisecond, 0, 27)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/news/:id", "404")))
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("asset-host", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("asset-host")))
	SetCircuitBreakerState("asset-host", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("asset-host")))
}

func TestRecordRateLimited(t *testing.T) {
	assert.NotPanics(t, func() { RecordRateLimited("/api/news") })
}
