package article

import (
	"log/slog"
	"net/http"

	"newsroom/internal/handler/http/respond"
	"newsroom/internal/observability/logging"
	artUC "newsroom/internal/usecase/article"
)

type UpdateHandler struct {
	Svc       *artUC.Service
	MaxMemory int64
}

// ServeHTTP 記事更新
// @Summary      記事更新
// @Description  送信されたフィールドのみを更新します。image を省略した場合は既存の画像を保持します。
// @Tags         news
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        id           path      string  true   "記事ID"
// @Param        title        formData  string  false  "タイトル"
// @Param        description  formData  string  false  "概要"
// @Param        content      formData  string  false  "本文"
// @Param        publishedAt  formData  string  false  "公開日時"
// @Param        sourceName   formData  string  false  "ソース名"
// @Param        sourceUrl    formData  string  false  "ソースURL"
// @Param        category     formData  string  false  "カテゴリ"
// @Param        image        formData  file    false  "画像"
// @Success      200 {object} NewsResponse
// @Failure      404 {object} respond.ErrorBody "News not found"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/news/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	form, err := parseForm(r, h.MaxMemory)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer form.Close()

	updated, err := h.Svc.Update(r.Context(), artUC.UpdateInput{
		ID:          id,
		Title:       form.Title,
		Description: form.Description,
		Content:     form.Content,
		PublishedAt: form.PublishedAt,
		SourceName:  form.SourceName,
		SourceURL:   form.SourceURL,
		Category:    form.Category,
		Image:       form.Image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("news updated", slog.String("id", id))
	respond.JSON(w, http.StatusOK, NewsResponse{Message: "News updated successfully", News: toDTO(updated)})
}
