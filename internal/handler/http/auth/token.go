package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"newsroom/internal/handler/http/respond"
	"newsroom/internal/observability/logging"
)

type loginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenHandler authenticates the admin and issues a JWT.
//
// @Summary      JWT トークン取得
// @Description  管理者のユーザー名とパスワードで認証し、JWT トークンを発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "ログイン情報"
// @Success      200 {object} tokenResponse "JWT トークン"
// @Failure      400 {object} respond.ErrorBody "リクエストが不正"
// @Failure      401 {object} respond.ErrorBody "認証失敗"
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Failure      500 {object} respond.ErrorBody "トークン生成失敗"
// @Router       /api/auth/token [post]
func TokenHandler(a *Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := logging.FromContext(r.Context())

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed", slog.String("reason", "invalid_request"))
			recordAuth(resultFailure, start)
			respond.Message(w, http.StatusBadRequest, "Invalid request")
			return
		}

		if err := a.CheckCredentials(req.Username, req.Password); err != nil {
			logger.Warn("authentication failed", slog.String("reason", "invalid_credentials"))
			recordAuth(resultFailure, start)
			respond.Message(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		signed, exp, err := a.Issue(req.Username)
		if err != nil {
			logger.Error("token generation failed", slog.Any("error", err))
			recordAuth(resultFailure, start)
			respond.Message(w, http.StatusInternalServerError, "Server error")
			return
		}

		logger.Info("authentication successful",
			slog.String("user", req.Username),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		recordAuth(resultSuccess, start)

		respond.JSON(w, http.StatusOK, tokenResponse{Token: signed, ExpiresAt: exp.UTC()})
	}
}
