// Package pathutil normalizes request paths for use as metric labels and span names.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// OtherTemplate is reported for any path that matches no known route.
const OtherTemplate = "/other"

// staticPaths are routes without path parameters.
var staticPaths = map[string]struct{}{
	"/":                    {},
	"/api/news":            {},
	"/api/news/categories": {},
	"/api/auth/token":      {},
	"/health":              {},
	"/live":                {},
	"/metrics":             {},
}

// pathPatterns are evaluated in order. Static siblings such as
// /api/news/categories are listed before the id template.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/news/[^/]+$`), Template: "/api/news/:id"},
	{Pattern: regexp.MustCompile(`^/uploads/.+$`), Template: "/uploads/:file"},
	{Pattern: regexp.MustCompile(`^/swagger/.*$`), Template: "/swagger/*"},
}

// NormalizePath converts paths with ids (e.g. /api/news/665f1c...) to their
// template (/api/news/:id) to keep metric label cardinality bounded.
// Query strings and trailing slashes are ignored. Unknown paths collapse to
// OtherTemplate so scanners cannot mint new series.
//
// Examples:
//
//	NormalizePath("/api/news/665f1c2ab1e4")   // "/api/news/:id"
//	NormalizePath("/api/news/categories")     // "/api/news/categories"
//	NormalizePath("/api/news?page=2")         // "/api/news"
//	NormalizePath("/health")                  // "/health"
//	NormalizePath("/wp-login.php")            // "/other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return OtherTemplate
}
