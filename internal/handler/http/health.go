// Package http provides the HTTP handlers and middleware of the article API:
// health endpoints, metrics, request logging and panic recovery. Article
// and auth routes live in sub-packages.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is satisfied by *sql.DB and db.MongoPinger.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// BreakerState reports whether the asset host breaker is open.
type BreakerState interface {
	BreakerOpen() bool
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler pings the article store and reports the asset host breaker.
// Returns 503 only when the store is unreachable; an open breaker only degrades.
type HealthHandler struct {
	Store   Pinger
	Driver  string
	Assets  BreakerState
	Version string
	Timeout time.Duration
}

// ServeHTTP godoc
// @Summary      Health check
// @Description  Pings the article store and reports the asset host circuit breaker.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := make(map[string]CheckStatus)
	status := "healthy"
	statusCode := http.StatusOK

	store := CheckStatus{Status: "healthy", Message: h.Driver}
	switch {
	case h.Store == nil:
		store = CheckStatus{Status: "unhealthy", Message: "not configured"}
	default:
		if err := h.Store.PingContext(ctx); err != nil {
			// 接続文字列を含む可能性があるため詳細は返さない
			slog.Warn("health: store ping failed", slog.String("driver", h.Driver), slog.Any("error", err))
			store = CheckStatus{Status: "unhealthy", Message: "store unreachable"}
		}
	}
	checks["store"] = store
	if store.Status != "healthy" {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	if h.Assets != nil {
		if h.Assets.BreakerOpen() {
			checks["assets"] = CheckStatus{Status: "degraded", Message: "circuit breaker open"}
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			checks["assets"] = CheckStatus{Status: "healthy"}
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process is able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("alive: failed to write response", slog.Any("error", err))
	}
}
