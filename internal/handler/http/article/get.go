package article

import (
	"net/http"

	"newsroom/internal/handler/http/respond"
	artUC "newsroom/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事詳細取得
// @Summary      記事詳細取得
// @Description  指定されたIDの記事を取得します
// @Tags         news
// @Produce      json
// @Param        id path string true "記事ID"
// @Success      200 {object} DTO
// @Failure      404 {object} respond.ErrorBody "News not found"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/news/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(a))
}
