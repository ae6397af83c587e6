package article

import (
	"net/http"

	"newsroom/internal/common/pagination"
	artUC "newsroom/internal/usecase/article"
)

// defaultMaxMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const defaultMaxMemory = 8 << 20

// Config wires the article handlers.
type Config struct {
	Svc        *artUC.Service
	Pagination pagination.Config
	// MaxMemory is passed to ParseMultipartForm.
	MaxMemory int64
	// Protect wraps the write routes (auth, rate limit). May be nil.
	Protect func(http.Handler) http.Handler
}

// Register registers the /api/news routes on mux.
// Reads are public; create, update and delete go through cfg.Protect.
func Register(mux *http.ServeMux, cfg Config) {
	maxMemory := cfg.MaxMemory
	if maxMemory <= 0 {
		maxMemory = defaultMaxMemory
	}
	protect := cfg.Protect
	if protect == nil {
		protect = func(h http.Handler) http.Handler { return h }
	}

	mux.Handle("GET /api/news", ListHandler{Svc: cfg.Svc, PaginationCfg: cfg.Pagination})
	mux.Handle("GET /api/news/categories", CategoriesHandler{})
	mux.Handle("GET /api/news/{id}", GetHandler{Svc: cfg.Svc})

	mux.Handle("POST /api/news", protect(CreateHandler{Svc: cfg.Svc, MaxMemory: maxMemory}))
	mux.Handle("PUT /api/news/{id}", protect(UpdateHandler{Svc: cfg.Svc, MaxMemory: maxMemory}))
	mux.Handle("DELETE /api/news/{id}", protect(DeleteHandler{Svc: cfg.Svc}))
}
