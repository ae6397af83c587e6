package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"newsroom/pkg/security/csp"
)

// SecurityHeadersConfig configures SecurityHeaders.
type SecurityHeadersConfig struct {
	CSPEnabled    bool
	CSPReportOnly bool
	CSPReportURI  string
	HSTSMaxAge    int
	// PathPolicies overrides the default policy for paths with the given
	// prefix. The longest matching prefix wins.
	PathPolicies map[string]*csp.Policy
	// DefaultPolicy defaults to csp.APIPolicy().
	DefaultPolicy *csp.Policy
}

// SecurityHeaders sets nosniff, frame and referrer headers on every response,
// plus the Content-Security-Policy chosen by path and optionally HSTS.
// Policy strings are rendered once when the middleware is built.
func SecurityHeaders(config SecurityHeadersConfig) func(http.Handler) http.Handler {
	headerName := csp.HeaderEnforce
	if config.CSPReportOnly {
		headerName = csp.HeaderReportOnly
	}

	render := func(p *csp.Policy) string {
		if config.CSPReportURI != "" {
			p.ReportURI(config.CSPReportURI)
		}
		return p.String()
	}

	def := config.DefaultPolicy
	if def == nil {
		def = csp.APIPolicy()
	}
	defaultValue := render(def)

	type prefixPolicy struct {
		prefix string
		value  string
	}
	var byPrefix []prefixPolicy
	for prefix, p := range config.PathPolicies {
		byPrefix = append(byPrefix, prefixPolicy{prefix: prefix, value: render(p)})
	}

	hsts := ""
	if config.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(config.HSTSMaxAge) + "; includeSubDomains"
	}

	policyFor := func(path string) string {
		value, best := defaultValue, -1
		for _, pp := range byPrefix {
			if strings.HasPrefix(path, pp.prefix) && len(pp.prefix) > best {
				value, best = pp.value, len(pp.prefix)
			}
		}
		return value
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}
			if config.CSPEnabled {
				h.Set(headerName, policyFor(r.URL.Path))
			}
			next.ServeHTTP(w, r)
		})
	}
}
