package article

import (
	"net/http"
	"time"

	"newsroom/internal/common/pagination"
	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/respond"
	"newsroom/internal/observability/logging"
	artUC "newsroom/internal/usecase/article"
)

type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP 記事一覧取得
// @Summary      記事一覧取得
// @Description  公開日時の新しい順に記事を返します。page または limit を指定するとページネーション付きのレスポンスになります。
// @Tags         news
// @Produce      json
// @Param        page   query    int  false  "ページ番号 (1-based)" minimum(1)
// @Param        limit  query    int  false  "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {array}  DTO "page/limit 未指定時は配列、指定時は pagination.Response[DTO]"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /api/news [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !pagination.Requested(r) {
		articles, err := h.Svc.List(ctx)
		if err != nil {
			writeError(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDTOs(articles))
		return
	}

	start := time.Now()
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		writeError(w, r, respond.NewAppError(err.Error(), err))
		return
	}

	result, err := h.Svc.ListPaginated(ctx, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logging.FromContext(ctx).Debug("paginated news list",
		"page", params.Page,
		"limit", params.Limit,
		"returned_count", len(result.Data),
		"duration_ms", time.Since(start).Milliseconds())

	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(result.Data), result.Pagination))
}

type CategoriesHandler struct{}

// ServeHTTP カテゴリ一覧
// @Summary      カテゴリ一覧
// @Description  管理画面のフォームで使う編集カテゴリの一覧
// @Tags         news
// @Produce      json
// @Success      200 {array} string
// @Router       /api/news/categories [get]
func (CategoriesHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, entity.Categories)
}
