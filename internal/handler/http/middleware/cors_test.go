package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"http://localhost:5173", "https://admin.example.com/"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         600,
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		origin       string
		preflight    bool
		wantCode     int
		wantOrigin   string
		wantNextCall bool
	}{
		{name: "same origin", method: http.MethodGet, wantCode: http.StatusOK, wantNextCall: true},
		{name: "allowed origin", method: http.MethodGet, origin: "http://localhost:5173", wantCode: http.StatusOK, wantOrigin: "http://localhost:5173", wantNextCall: true},
		{name: "trailing slash in config", method: http.MethodPost, origin: "https://admin.example.com", wantCode: http.StatusOK, wantOrigin: "https://admin.example.com", wantNextCall: true},
		{name: "disallowed origin", method: http.MethodGet, origin: "https://evil.example", wantCode: http.StatusOK, wantNextCall: true},
		{name: "allowed preflight", method: http.MethodOptions, origin: "http://localhost:5173", preflight: true, wantCode: http.StatusNoContent, wantOrigin: "http://localhost:5173"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := CORS(testCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/api/news", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantNextCall, called)
			if tt.preflight {
				assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
			}
		})
	}
}
