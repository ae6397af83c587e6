package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess      = "success"
	resultFailure      = "failure"
	resultUnauthorized = "unauthorized"
	resultForbidden    = "forbidden"
)

var (
	// authRequestsTotal counts login attempts by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by result",
		},
		[]string{"result"}, // success | failure
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication duration",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	// authDeniedTotal counts write requests rejected by RequireAdmin.
	authDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_denied_total",
			Help: "Requests rejected by the admin middleware",
		},
		[]string{"reason"},
	)
)

func recordAuth(result string, start time.Time) {
	authRequestsTotal.WithLabelValues(result).Inc()
	authDuration.Observe(time.Since(start).Seconds())
}

func recordDenied(reason string) {
	authDeniedTotal.WithLabelValues(reason).Inc()
}
