package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig configures the per-client token bucket.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTTL is how long an unused client bucket is kept.
	IdleTTL time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-client-IP token bucket using x/time/rate.
// Buckets of clients that have been idle longer than IdleTTL are dropped by
// Cleanup, which Run calls periodically.
type RateLimiter struct {
	config    RateLimiterConfig
	extractor IPExtractor
	// OnLimited is called for every rejected request (metrics hook).
	OnLimited func(r *http.Request)
	// OnRejected writes the 429 response. Defaults to a plain JSON body.
	OnRejected func(w http.ResponseWriter, r *http.Request)

	mu      sync.Mutex
	clients map[string]*clientLimiter
	now     func() time.Time
}

// NewRateLimiter creates a new RateLimiter.
//
// Example:
//
//	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 2, Burst: 10, IdleTTL: 10 * time.Minute}, RemoteAddrExtractor{})
//	mux.Handle("POST /api/news", rl.Middleware(create))
func NewRateLimiter(config RateLimiterConfig, extractor IPExtractor) *RateLimiter {
	if extractor == nil {
		extractor = RemoteAddrExtractor{}
	}
	return &RateLimiter{
		config:    config,
		extractor: extractor,
		clients:   make(map[string]*clientLimiter),
		now:       time.Now,
	}
}

// Allow reports whether one request from key may proceed, and how long the
// client should wait otherwise.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst)}
		rl.clients[key] = c
	}
	now := rl.now()
	c.lastSeen = now
	rl.mu.Unlock()

	r := c.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.DelayFrom(now); delay > 0 {
		// トークン不足: 予約を取り消して拒否
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Middleware applies the limit to next. Requests whose client IP cannot be
// determined are let through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := rl.extractor.ExtractIP(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ok, retryAfter := rl.Allow(ip)
		if ok {
			next.ServeHTTP(w, r)
			return
		}

		if rl.OnLimited != nil {
			rl.OnLimited(r)
		}
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		if rl.OnRejected != nil {
			rl.OnRejected(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"Too many requests"}` + "\n"))
	})
}

// Cleanup drops buckets idle for longer than IdleTTL and returns how many were removed.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.config.IdleTTL)
	removed := 0
	for key, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of tracked clients.
func (rl *RateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Run calls Cleanup every interval until ctx is cancelled.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return nil
		case <-ticker.C:
			if n := rl.Cleanup(); n > 0 {
				slog.Debug("rate limit cleanup completed", slog.Int("removed", n))
			}
		}
	}
}
