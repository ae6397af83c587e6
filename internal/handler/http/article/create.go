package article

import (
	"log/slog"
	"net/http"

	"newsroom/internal/handler/http/respond"
	"newsroom/internal/observability/logging"
	artUC "newsroom/internal/usecase/article"
)

type CreateHandler struct {
	Svc       *artUC.Service
	MaxMemory int64
}

// ServeHTTP 記事作成
// @Summary      記事作成
// @Description  新しい記事を作成します。image ファイルが添付されている場合は先にアセットホストへアップロードします。
// @Tags         news
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        title        formData  string  true   "タイトル"
// @Param        description  formData  string  true   "概要"
// @Param        content      formData  string  false  "本文"
// @Param        publishedAt  formData  string  false  "公開日時 (RFC 3339 / YYYY-MM-DDTHH:MM / YYYY-MM-DD)"
// @Param        sourceName   formData  string  true   "ソース名"
// @Param        sourceUrl    formData  string  false  "ソースURL"
// @Param        category     formData  string  true   "カテゴリ"
// @Param        image        formData  file    false  "画像"
// @Success      201 {object} NewsResponse
// @Failure      401 {object} respond.ErrorBody "Authentication required (auth enabled only)"
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Failure      500 {object} respond.ErrorBody "Server error (validation, upload or store failure)"
// @Router       /api/news [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r, h.MaxMemory)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer form.Close()

	created, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Title:       deref(form.Title),
		Description: deref(form.Description),
		Content:     deref(form.Content),
		PublishedAt: form.PublishedAt,
		SourceName:  deref(form.SourceName),
		SourceURL:   deref(form.SourceURL),
		Category:    deref(form.Category),
		Image:       form.Image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("news created",
		slog.String("id", created.ID),
		slog.Bool("with_image", created.Image != ""))
	respond.JSON(w, http.StatusCreated, NewsResponse{Message: "News created successfully", News: toDTO(created)})
}
