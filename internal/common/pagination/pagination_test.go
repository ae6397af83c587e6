package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	assert.Equal(t, Config{DefaultLimit: 20, MaxLimit: 100}, NewConfig(0, 0))
	assert.Equal(t, Config{DefaultLimit: 5, MaxLimit: 50}, NewConfig(5, 50))
	assert.Equal(t, Config{DefaultLimit: 10, MaxLimit: 10}, NewConfig(30, 10), "default is clamped to max")
}

func TestParseQueryParams(t *testing.T) {
	cfg := NewConfig(20, 100)

	tests := []struct {
		name    string
		query   string
		want    Params
		wantErr string
	}{
		{name: "defaults", query: "", want: Params{Page: 1, Limit: 20}},
		{name: "page only", query: "?page=3", want: Params{Page: 3, Limit: 20}},
		{name: "page and limit", query: "?page=2&limit=5", want: Params{Page: 2, Limit: 5}},
		{name: "limit at max", query: "?limit=100", want: Params{Page: 1, Limit: 100}},
		{name: "zero page", query: "?page=0", wantErr: "page"},
		{name: "non numeric page", query: "?page=abc", wantErr: "page"},
		{name: "limit above max", query: "?limit=101", wantErr: "limit must be between 1 and 100"},
		{name: "negative limit", query: "?limit=-1", wantErr: "limit"},
		{name: "last addressable page", query: "?page=21474837&limit=100", want: Params{Page: 21474837, Limit: 100}},
		{name: "page past max offset", query: "?page=21474838&limit=100", wantErr: "page"},
		{name: "max int page", query: "?page=9223372036854775807&limit=100", wantErr: "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/news"+tt.query, nil)
			got, err := ParseQueryParams(req, cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequested(t *testing.T) {
	assert.False(t, Requested(httptest.NewRequest("GET", "/api/news", nil)))
	assert.True(t, Requested(httptest.NewRequest("GET", "/api/news?page=1", nil)))
	assert.True(t, Requested(httptest.NewRequest("GET", "/api/news?limit=", nil)))
}

func TestCalculations(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 20))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, MaxOffset, CalculateOffset(math.MaxInt, 100), "saturates instead of wrapping")
	assert.Equal(t, 21474837, MaxPage(100))

	assert.Equal(t, 1, CalculateTotalPages(0, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))
	assert.Equal(t, 5, CalculateTotalPages(100, 20))
}

func TestNewMetadata(t *testing.T) {
	md := NewMetadata(Params{Page: 2, Limit: 10}, 25)
	assert.Equal(t, Metadata{Total: 25, Page: 2, Limit: 10, TotalPages: 3, HasMore: true}, md)

	last := NewMetadata(Params{Page: 3, Limit: 10}, 25)
	assert.False(t, last.HasMore)
}

func TestNewMetadata_HugePageHasNoMore(t *testing.T) {
	md := NewMetadata(Params{Page: math.MaxInt, Limit: 100}, 25)
	assert.False(t, md.HasMore)
}

func TestNewResponse_NilDataBecomesEmpty(t *testing.T) {
	resp := NewResponse[string](nil, Metadata{})
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}
