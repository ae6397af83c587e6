package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/config"
	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/middleware"
	artUC "newsroom/internal/usecase/article"
)

/* ───────── スタブ実装 ───────── */

type memRepo struct {
	mu   sync.Mutex
	data map[string]*entity.Article
}

func (m *memRepo) List(context.Context) ([]*entity.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Article, 0, len(m.data))
	for _, a := range m.data {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (m *memRepo) ListPaginated(ctx context.Context, _, _ int) ([]*entity.Article, error) {
	return m.List(ctx)
}

func (m *memRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.data)), nil
}

func (m *memRepo) Get(_ context.Context, id string) (*entity.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (m *memRepo) Create(_ context.Context, a *entity.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = "a1"
	c := *a
	m.data[a.ID] = &c
	return nil
}

func (m *memRepo) Update(_ context.Context, a *entity.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *a
	m.data[a.ID] = &c
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[id]
	delete(m.data, id)
	return ok, nil
}

type pingFunc func(context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type breaker bool

func (b breaker) BreakerOpen() bool { return bool(b) }

/* ───────── ヘルパ ───────── */

const articleJSON = `{"title":"A","description":"B","sourceName":"X","category":"General"}`

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	return &cfg
}

func newTestRouter(t *testing.T, cfg *config.Config, limiter *middleware.RateLimiter, localDir string) http.Handler {
	t.Helper()
	h, err := newRouter(routerDeps{
		Config:   cfg,
		Service:  &artUC.Service{Repo: &memRepo{data: map[string]*entity.Article{}}},
		Store:    pingFunc(func(context.Context) error { return nil }),
		Assets:   breaker(false),
		LocalDir: localDir,
		Limiter:  limiter,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return h
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postArticle(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/news", strings.NewReader(articleJSON))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

/* ───────── ルーティング ───────── */

func TestRouter_PublicEndpoints(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil, "")

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'none'")

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/news/categories", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ArticleRoundTrip(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil, "")

	rec := serve(h, postArticle(""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/news/a1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/api/news/a1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/news/a1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t, testConfig(), nil, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/news", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(h, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimitsWritesOnly(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: 0.001,
		Burst:             1,
		IdleTTL:           time.Minute,
	}, middleware.RemoteAddrExtractor{})
	h := newTestRouter(t, testConfig(), limiter, "")

	assert.Equal(t, http.StatusCreated, serve(h, postArticle("")).Code)

	rec := serve(h, postArticle(""))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// 読み取りは制限対象外
	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/api/news", nil)).Code)
}

func TestRouter_AuthEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.Auth = config.AuthConfig{
		Enabled:       true,
		JWTSecret:     "k3y-0123456789abcdef0123456789abcdef",
		AdminUser:     "editor",
		AdminPassword: "correct horse battery",
		TokenTTL:      time.Hour,
	}
	h := newTestRouter(t, cfg, nil, "")

	assert.Equal(t, http.StatusUnauthorized, serve(h, postArticle("")).Code)
	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/api/news", nil)).Code)

	login := httptest.NewRequest(http.MethodPost, "/api/auth/token",
		strings.NewReader(`{"username":"editor","password":"correct horse battery"}`))
	login.Header.Set("Content-Type", "application/json")
	rec := serve(h, login)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.Token)

	assert.Equal(t, http.StatusCreated, serve(h, postArticle(tok.Token)).Code)
}

func TestRouter_AuthMisconfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Enabled = true

	_, err := newRouter(routerDeps{
		Config:  cfg,
		Service: &artUC.Service{},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.Error(t, err)
}

func TestRouter_ServesLocalUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), []byte("png-bytes"), 0o600))
	h := newTestRouter(t, testConfig(), nil, dir)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/uploads/cover.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "sandbox")

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/uploads/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

/* ───────── 起動処理 ───────── */

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, loadDotEnv(""))
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NEWSROOM_TEST_VALUE=from-dotenv\n"), 0o600))
	t.Setenv("NEWSROOM_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("NEWSROOM_TEST_VALUE"))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("NEWSROOM_TEST_VALUE"))
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("NEWSROOM_CONFIG", "")
	assert.Equal(t, "explicit.yaml", resolveConfigPath("explicit.yaml"))

	t.Setenv("NEWSROOM_CONFIG", "/etc/newsroom.yaml")
	assert.Equal(t, "/etc/newsroom.yaml", resolveConfigPath(""))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), config.StoreConfig{Driver: "sqlite"})
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestNewRateLimiter_Disabled(t *testing.T) {
	rl, err := newRateLimiter(config.RateLimitConfig{Enabled: false}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Nil(t, rl)

	_, err = newRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, Burst: 1, TrustedProxies: []string{"not-an-ip"}},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
