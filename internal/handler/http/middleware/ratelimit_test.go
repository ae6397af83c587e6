package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── ヘルパ ───────── */

func newTestLimiter(burst int) (*RateLimiter, *time.Time) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: burst, IdleTTL: time.Minute}, nil)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func doRequest(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/news", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

/* ───────── テスト ───────── */

func TestRateLimiter_Allow(t *testing.T) {
	rl, now := newTestLimiter(2)

	ok, _ := rl.Allow("a")
	assert.True(t, ok)
	ok, _ = rl.Allow("a")
	assert.True(t, ok)
	ok, wait := rl.Allow("a")
	assert.False(t, ok, "burst exhausted")
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = rl.Allow("b")
	assert.True(t, ok, "other clients have their own bucket")

	*now = now.Add(time.Second)
	ok, _ = rl.Allow("a")
	assert.True(t, ok, "token refilled after one second")
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(1)
	limited := 0
	rl.OnLimited = func(*http.Request) { limited++ }

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	assert.Equal(t, http.StatusCreated, doRequest(h, "192.0.2.1:1000").Code)

	rec := doRequest(h, "192.0.2.1:1001")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"Too many requests"}`, rec.Body.String())
	assert.Equal(t, 1, limited)

	assert.Equal(t, http.StatusCreated, doRequest(h, "192.0.2.2:1000").Code)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, now := newTestLimiter(5)
	rl.Allow("old")
	*now = now.Add(2 * time.Minute)
	rl.Allow("fresh")

	assert.Equal(t, 1, rl.Cleanup())
	assert.Equal(t, 1, rl.Size())
}

func TestRateLimiter_RunStopsOnCancel(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 1, IdleTTL: time.Minute}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rl.Run(ctx, 10*time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
