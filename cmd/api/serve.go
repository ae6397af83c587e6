package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"newsroom/internal/config"
	hhttp "newsroom/internal/handler/http"
	"newsroom/internal/handler/http/middleware"
	"newsroom/internal/infra/adapter/persistence/mongodb"
	"newsroom/internal/infra/adapter/persistence/postgres"
	"newsroom/internal/infra/assets"
	"newsroom/internal/infra/db"
	"newsroom/internal/observability/tracing"
	"newsroom/internal/repository"
	artUC "newsroom/internal/usecase/article"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

// store is an opened article store.
type store struct {
	repo   repository.ArticleRepository
	pinger hhttp.Pinger
	close  func(context.Context) error
}

// openStore connects the configured driver and prepares its schema.
// Startup fails when the store is unreachable.
func openStore(ctx context.Context, sc config.StoreConfig) (*store, error) {
	switch sc.Driver {
	case config.DriverPostgres:
		database, err := db.OpenPostgres(ctx, sc)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(database); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return &store{
			repo:   postgres.NewArticleRepo(database),
			pinger: database,
			close:  func(context.Context) error { return database.Close() },
		}, nil

	case config.DriverMongo:
		client, coll, err := db.OpenMongo(ctx, sc)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, coll); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			repo:   mongodb.NewArticleRepo(coll),
			pinger: db.MongoPinger{Client: client},
			close:  client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", sc.Driver)
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, logger, err := bootstrap(opts)
	if err != nil {
		return err
	}

	tp, err := tracing.NewProvider(cfg.Tracing, cfg.Server.Version)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("tracer provider shutdown failed", slog.Any("error", err))
		}
	}()

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			logger.Error("failed to close article store", slog.Any("error", err))
		}
	}()

	uploader, localDir, err := assets.New(cfg.Assets, cfg.Server.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("init asset uploader: %w", err)
	}
	logger.Info("asset uploader ready",
		slog.String("provider", cfg.Assets.Provider),
		slog.String("folder", cfg.Assets.Folder))

	svc := &artUC.Service{
		Repo:             st.repo,
		Uploader:         uploader,
		StrictCategories: cfg.Articles.StrictCategories,
	}

	limiter, err := newRateLimiter(cfg.RateLimit, logger)
	if err != nil {
		return err
	}

	handler, err := newRouter(routerDeps{
		Config:   cfg,
		Service:  svc,
		Store:    st.pinger,
		Assets:   uploader,
		LocalDir: localDir,
		Limiter:  limiter,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// リクエストのコンテキストはシャットダウン開始後も生かす
	baseCtx := context.WithoutCancel(ctx)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("store", cfg.Store.Driver),
			slog.String("version", cfg.Server.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	if limiter != nil {
		g.Go(func() error { return limiter.Run(gctx, cleanupInterval(cfg.RateLimit.CleanupInterval)) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}

// newRateLimiter returns nil when rate limiting is disabled.
func newRateLimiter(rc config.RateLimitConfig, logger *slog.Logger) (*middleware.RateLimiter, error) {
	if !rc.Enabled {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
		return nil, nil
	}

	var extractor middleware.IPExtractor = middleware.RemoteAddrExtractor{}
	if len(rc.TrustedProxies) > 0 {
		prefixes, err := middleware.ParseTrustedProxies(rc.TrustedProxies)
		if err != nil {
			return nil, fmt.Errorf("rate_limit.trusted_proxies: %w", err)
		}
		extractor = middleware.NewTrustedProxyExtractor(prefixes)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(prefixes)))
	} else {
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	}

	rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: rc.RequestsPerSecond,
		Burst:             rc.Burst,
		IdleTTL:           rc.IdleTTL,
	}, extractor)
	rl.OnLimited = hhttp.RecordRateLimited

	logger.Info("rate limiting initialized",
		slog.Float64("rps", rc.RequestsPerSecond),
		slog.Int("burst", rc.Burst),
		slog.Duration("idle_ttl", rc.IdleTTL))
	return rl, nil
}

// cleanupInterval guards against a zero ticker interval.
func cleanupInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Minute
	}
	return d
}
