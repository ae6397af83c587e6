package main

import (
	"log/slog"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"newsroom/internal/common/pagination"
	"newsroom/internal/config"
	hhttp "newsroom/internal/handler/http"
	harticle "newsroom/internal/handler/http/article"
	hauth "newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/middleware"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/requestid"
	"newsroom/internal/infra/assets"
	"newsroom/internal/observability/tracing"
	artUC "newsroom/internal/usecase/article"
	"newsroom/pkg/security/csp"
)

// multipartOverhead is the body allowance on top of the image size for the
// text fields and multipart framing.
const multipartOverhead = 1 << 20

type routerDeps struct {
	Config   *config.Config
	Service  *artUC.Service
	Store    hhttp.Pinger
	Assets   hhttp.BreakerState
	LocalDir string
	Limiter  *middleware.RateLimiter // nil when disabled
	Logger   *slog.Logger
}

// newRouter registers every route and wraps the mux in the global middleware.
// Order (outermost first): Request ID → Tracing → Logging → Recovery → Metrics → Security Headers → CORS → Body Limit
func newRouter(d routerDeps) (http.Handler, error) {
	cfg := d.Config

	var writeGuards []func(http.Handler) http.Handler
	if d.Limiter != nil {
		writeGuards = append(writeGuards, d.Limiter.Middleware)
	}

	mux := http.NewServeMux()

	if cfg.Auth.Enabled {
		authenticator, err := hauth.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.AdminUser, cfg.Auth.AdminPassword, cfg.Auth.TokenTTL)
		if err != nil {
			return nil, err
		}
		// ログイン試行にも同じレート制限をかける
		mux.Handle("POST /api/auth/token", hhttp.Chain(hauth.TokenHandler(authenticator), writeGuards...))
		writeGuards = append(writeGuards, hauth.RequireAdmin(authenticator))
		d.Logger.Info("admin authentication enabled for write routes")
	} else {
		d.Logger.Warn("authentication is DISABLED - write routes are open")
	}

	harticle.Register(mux, harticle.Config{
		Svc:        d.Service,
		Pagination: pagination.NewConfig(cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit),
		Protect: func(h http.Handler) http.Handler {
			return hhttp.Chain(h, writeGuards...)
		},
	})

	// ヘルスチェック・メトリクス・Swagger（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Store:   d.Store,
		Driver:  cfg.Store.Driver,
		Assets:  d.Assets,
		Version: cfg.Server.Version,
	})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	if d.LocalDir != "" {
		mux.Handle("GET "+assets.LocalPathPrefix, http.StripPrefix(assets.LocalPathPrefix, noDirListing(http.FileServer(http.Dir(d.LocalDir)))))
	}

	corsCfg := middleware.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		MaxAge:         cfg.CORS.MaxAge,
		Logger:         d.Logger,
	}
	d.Logger.Info("CORS enabled",
		slog.Int("allowed_origins_count", len(corsCfg.AllowedOrigins)),
		slog.Any("allowed_origins", corsCfg.AllowedOrigins))

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware(pathutil.NormalizePath),
		hhttp.Logging(d.Logger),
		hhttp.Recover(d.Logger),
		hhttp.MetricsMiddleware,
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{
			CSPEnabled:    cfg.Security.CSPEnabled,
			CSPReportOnly: cfg.Security.CSPReportOnly,
			CSPReportURI:  cfg.Security.CSPReportURI,
			HSTSMaxAge:    cfg.Security.HSTSMaxAge,
			PathPolicies: map[string]*csp.Policy{
				"/swagger/":            csp.SwaggerUIPolicy(),
				assets.LocalPathPrefix: csp.UploadPolicy(),
			},
		}),
		middleware.CORS(corsCfg),
		hhttp.LimitRequestBody(cfg.Assets.MaxUploadBytes+multipartOverhead),
	), nil
}

// noDirListing answers 404 for directory paths.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
