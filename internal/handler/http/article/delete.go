package article

import (
	"log/slog"
	"net/http"

	"newsroom/internal/handler/http/respond"
	"newsroom/internal/observability/logging"
	artUC "newsroom/internal/usecase/article"
)

type DeleteHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事削除
// @Summary      記事削除
// @Description  指定されたIDの記事を物理削除します
// @Tags         news
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "記事ID"
// @Success      200 {object} respond.ErrorBody "News deleted successfully"
// @Failure      404 {object} respond.ErrorBody "News not found"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/news/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("news deleted", slog.String("id", id))
	respond.Message(w, http.StatusOK, "News deleted successfully")
}
