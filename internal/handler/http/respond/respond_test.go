package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/domain/entity"
	"newsroom/internal/observability/logging"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{name: "map", code: http.StatusOK, data: map[string]string{"message": "success"}, expectedBody: `{"message":"success"}`},
		{name: "struct", code: http.StatusCreated, data: struct{ ID string }{ID: "a1"}, expectedBody: `{"ID":"a1"}`},
		{name: "nil", code: http.StatusNoContent, data: nil, expectedBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.expectedBody == "" {
				assert.Empty(t, w.Body.String())
				return
			}
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Message(w, http.StatusNotFound, "News not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"News not found"}`, w.Body.String())
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantDetail string
		wantLogged bool
	}{
		{
			name:       "validation error is shown",
			err:        fmt.Errorf("create: %w", &entity.ValidationError{Field: "title", Message: "is required"}),
			wantDetail: "validation error on field 'title': is required",
		},
		{
			name:       "app error shows user message only",
			err:        NewAppError("invalid request body", errors.New("unexpected EOF at offset 12")),
			wantDetail: "invalid request body",
		},
		{
			name:       "store error is masked",
			err:        errors.New("dial mongodb://root:hunter2@db:27017: connection refused"),
			wantDetail: "internal server error",
			wantLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			req := httptest.NewRequest(http.MethodPost, "/api/news", nil)
			req = req.WithContext(logging.WithLogger(req.Context(), logger))
			w := httptest.NewRecorder()

			SafeError(w, req, http.StatusInternalServerError, "Server error", tt.err)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Server error", body.Message)
			assert.Equal(t, tt.wantDetail, body.Error)

			if tt.wantLogged {
				assert.Contains(t, buf.String(), "request failed")
				assert.NotContains(t, buf.String(), "hunter2")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestSafeError_NilIsNoop(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusInternalServerError, "Server error", nil)
	assert.Empty(t, w.Body.String())
}
