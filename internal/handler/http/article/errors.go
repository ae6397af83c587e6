package article

import (
	"errors"
	"net/http"

	"newsroom/internal/handler/http/respond"
	artUC "newsroom/internal/usecase/article"
)

const (
	msgNotFound    = "News not found"
	msgServerError = "Server error"
)

// writeError maps service errors onto the two-status taxonomy of the API:
// 404 for an absent article, 500 for everything else.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, artUC.ErrArticleNotFound) {
		respond.Message(w, http.StatusNotFound, msgNotFound)
		return
	}
	respond.SafeError(w, r, http.StatusInternalServerError, msgServerError, err)
}
