// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newsroom/internal/domain/entity"
	"newsroom/internal/observability/logging"
)

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダー送信済みのためログのみ
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Message: msg})
}

// AppError is an error type that carries a user-facing message.
type AppError struct {
	UserMsg string // Message to display to users
	Err     error  // Internal error (logged for debugging)
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.UserMsg + ": " + e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(userMsg string, err error) *AppError {
	return &AppError{UserMsg: userMsg, Err: err}
}

// PublicDetail returns the part of err that may be shown to clients, and
// false when err must stay internal. Validation errors and AppErrors are
// public; anything else (store, network, asset host) is not.
func PublicDetail(err error) (string, bool) {
	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error(), true
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.UserMsg, true
	}
	return "", false
}

// SafeError writes {"message": message, "error": detail}. The detail is
// the public part of err, or "internal server error" with the sanitized
// error logged through the request logger.
func SafeError(w http.ResponseWriter, r *http.Request, code int, message string, err error) {
	if err == nil {
		return
	}

	detail, ok := PublicDetail(err)
	if !ok {
		detail = "internal server error"
		// 機密情報をマスクしてログ出力
		logging.FromContext(r.Context()).Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("code", code),
			slog.String("error", SanitizeError(err)))
	}
	JSON(w, code, ErrorBody{Message: message, Error: detail})
}
