package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// Offset returns the number of items to skip for p.
func (p Params) Offset() int {
	return CalculateOffset(p.Page, p.Limit)
}

// Requested reports whether the request asks for a paginated listing.
// A bare GET /api/news keeps returning the full array.
func Requested(r *http.Request) bool {
	q := r.URL.Query()
	return q.Has("page") || q.Has("limit")
}

// ParseQueryParams parses pagination parameters from HTTP request query string.
// Missing parameters take the configured defaults.
//
// Query parameters:
//   - page: Page number (positive integer, at most MaxPage(limit))
//   - limit: Items per page (must be between 1 and config.MaxLimit)
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  1,
		Limit: config.DefaultLimit,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	// (page-1)*limit がオーバーフローしないように
	if params.Page > MaxPage(params.Limit) {
		return params, fmt.Errorf("page must be a positive integer no greater than %d", MaxPage(params.Limit))
	}

	return params, nil
}
