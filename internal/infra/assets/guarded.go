package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"newsroom/internal/observability/metrics"
	"newsroom/internal/resilience/circuitbreaker"
)

// Guarded wraps an Uploader with a circuit breaker, a per-call timeout and
// upload metrics. Failed uploads are not retried.
type Guarded struct {
	next     Uploader
	provider string
	breaker  *circuitbreaker.CircuitBreaker
	timeout  time.Duration
}

// NewGuarded wraps next. provider labels the metrics; timeout <= 0 disables the per-call deadline.
func NewGuarded(next Uploader, provider string, cfg circuitbreaker.Config, timeout time.Duration) *Guarded {
	name := cfg.Name
	cfg.OnStateChange = func(_ string, _, to gobreaker.State) {
		metrics.SetCircuitBreakerState(name, breakerStateValue(to))
	}
	metrics.SetCircuitBreakerState(name, 0)
	return &Guarded{
		next:     next,
		provider: provider,
		breaker:  circuitbreaker.New(cfg),
		timeout:  timeout,
	}
}

// Upload implements Uploader.
func (g *Guarded) Upload(ctx context.Context, up Upload) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	url, err := circuitbreaker.Do(g.breaker, func() (string, error) {
		return g.next.Upload(ctx, up)
	})
	metrics.RecordAssetUpload(g.provider, err, up.Size, time.Since(start))

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

// BreakerOpen reports whether uploads are currently rejected.
func (g *Guarded) BreakerOpen() bool {
	return g.breaker.IsOpen()
}

func breakerStateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
