// Package config loads the service configuration.
//
// Values are resolved once at startup in three layers: built-in defaults,
// an optional YAML file, then environment variables. The result is passed
// explicitly to every component; nothing reads the environment afterwards.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	envcfg "newsroom/pkg/config"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Asset providers.
const (
	AssetsCloudinary = "cloudinary"
	AssetsLocal      = "local"
)

const minJWTSecretLength = 32

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Store      StoreConfig      `yaml:"store"`
	Assets     AssetsConfig     `yaml:"assets"`
	Articles   ArticlesConfig   `yaml:"articles"`
	Pagination PaginationConfig `yaml:"pagination"`
	Auth       AuthConfig       `yaml:"auth"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Tracing    TracingConfig    `yaml:"tracing"`
	Security   SecurityConfig   `yaml:"security"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// PublicBaseURL is the externally reachable base URL of this API
	// (e.g. "https://api.example.com"). Clients and locally stored
	// asset URLs are derived from it.
	PublicBaseURL     string        `yaml:"public_base_url"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	Version           string        `yaml:"version"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// StoreConfig selects and configures the article store.
type StoreConfig struct {
	Driver string `yaml:"driver"`

	MongoURI        string        `yaml:"mongo_uri"`
	MongoDatabase   string        `yaml:"mongo_database"`
	MongoCollection string        `yaml:"mongo_collection"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`

	DatabaseURL     string        `yaml:"database_url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// AssetsConfig configures the image asset host.
type AssetsConfig struct {
	Provider       string        `yaml:"provider"`
	Folder         string        `yaml:"folder"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	UploadTimeout  time.Duration `yaml:"upload_timeout"`

	// CloudinaryURL has the form cloudinary://<api_key>:<api_secret>@<cloud_name>
	// and takes precedence over the individual fields.
	CloudinaryURL       string `yaml:"cloudinary_url"`
	CloudinaryCloudName string `yaml:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `yaml:"cloudinary_api_key"`
	CloudinaryAPISecret string `yaml:"cloudinary_api_secret"`

	LocalDir string `yaml:"local_dir"`

	BreakerMinRequests  uint32        `yaml:"breaker_min_requests"`
	BreakerFailureRatio float64       `yaml:"breaker_failure_ratio"`
	BreakerOpenTimeout  time.Duration `yaml:"breaker_open_timeout"`
}

// ArticlesConfig holds editorial rules.
type ArticlesConfig struct {
	// StrictCategories rejects categories outside the editorial vocabulary.
	StrictCategories bool `yaml:"strict_categories"`
}

// PaginationConfig bounds the page/limit query parameters of the list endpoint.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// AuthConfig configures the optional admin login for write routes.
type AuthConfig struct {
	Enabled       bool          `yaml:"enabled"`
	JWTSecret     string        `yaml:"jwt_secret"`
	AdminUser     string        `yaml:"admin_user"`
	AdminPassword string        `yaml:"admin_password"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
}

// CORSConfig is the cross-origin whitelist.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}

// RateLimitConfig configures the per-client token bucket on write routes.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	IdleTTL           time.Duration `yaml:"idle_ttl"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"`
	// TrustedProxies lists proxy IPs/CIDRs whose X-Forwarded-For is honoured.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// TracingConfig configures the OpenTelemetry tracer provider.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Default returns the built-in configuration. It is usable for local
// development against a MongoDB on localhost with files stored on disk.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":5000",
			PublicBaseURL:     "http://localhost:5000",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			Version:           "dev",
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Store: StoreConfig{
			Driver:          DriverMongo,
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "newsroom",
			MongoCollection: "news",
			ConnectTimeout:  10 * time.Second,
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
		},
		Assets: AssetsConfig{
			Provider:            AssetsLocal,
			Folder:              "news_images",
			MaxUploadBytes:      10 << 20,
			UploadTimeout:       30 * time.Second,
			LocalDir:            "uploads",
			BreakerMinRequests:  5,
			BreakerFailureRatio: 0.6,
			BreakerOpenTimeout:  60 * time.Second,
		},
		Pagination: PaginationConfig{DefaultLimit: 20, MaxLimit: 100},
		Auth: AuthConfig{
			TokenTTL: time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:5174",
				"http://localhost:3000",
			},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
			MaxAge:         86400,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 2,
			Burst:             10,
			IdleTTL:           10 * time.Minute,
			CleanupInterval:   time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:     true,
			ServiceName: "newsroom-api",
			SampleRatio: 1,
		},
		Security: defaultSecurity(),
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 -- path comes from the command line, not from requests
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	envcfg.OverrideString(&cfg.Server.Addr, "LISTEN_ADDR")
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	envcfg.OverrideString(&cfg.Server.PublicBaseURL, "PUBLIC_BASE_URL")
	envcfg.OverrideDuration(&cfg.Server.ShutdownTimeout, "SHUTDOWN_TIMEOUT")
	envcfg.OverrideString(&cfg.Server.Version, "VERSION")

	envcfg.OverrideString(&cfg.Log.Level, "LOG_LEVEL")
	envcfg.OverrideString(&cfg.Log.Format, "LOG_FORMAT")

	envcfg.OverrideString(&cfg.Store.Driver, "STORE_DRIVER")
	envcfg.OverrideString(&cfg.Store.MongoURI, "MONGO_URI")
	envcfg.OverrideString(&cfg.Store.MongoDatabase, "MONGO_DATABASE")
	envcfg.OverrideString(&cfg.Store.MongoCollection, "MONGO_COLLECTION")
	envcfg.OverrideString(&cfg.Store.DatabaseURL, "DATABASE_URL")
	envcfg.OverrideInt(&cfg.Store.MaxOpenConns, "DB_MAX_OPEN_CONNS")
	envcfg.OverrideInt(&cfg.Store.MaxIdleConns, "DB_MAX_IDLE_CONNS")
	envcfg.OverrideDuration(&cfg.Store.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME")
	envcfg.OverrideDuration(&cfg.Store.ConnMaxIdleTime, "DB_CONN_MAX_IDLE_TIME")

	envcfg.OverrideString(&cfg.Assets.Provider, "ASSETS_PROVIDER")
	envcfg.OverrideString(&cfg.Assets.Folder, "ASSETS_FOLDER")
	envcfg.OverrideInt64(&cfg.Assets.MaxUploadBytes, "ASSETS_MAX_UPLOAD_BYTES")
	envcfg.OverrideDuration(&cfg.Assets.UploadTimeout, "ASSETS_UPLOAD_TIMEOUT")
	envcfg.OverrideString(&cfg.Assets.LocalDir, "ASSETS_LOCAL_DIR")
	envcfg.OverrideString(&cfg.Assets.CloudinaryURL, "CLOUDINARY_URL")
	envcfg.OverrideString(&cfg.Assets.CloudinaryCloudName, "CLOUDINARY_CLOUD_NAME")
	envcfg.OverrideString(&cfg.Assets.CloudinaryAPIKey, "CLOUDINARY_API_KEY")
	envcfg.OverrideString(&cfg.Assets.CloudinaryAPISecret, "CLOUDINARY_API_SECRET")

	envcfg.OverrideBool(&cfg.Articles.StrictCategories, "ARTICLES_STRICT_CATEGORIES")

	envcfg.OverrideInt(&cfg.Pagination.DefaultLimit, "PAGINATION_DEFAULT_LIMIT")
	envcfg.OverrideInt(&cfg.Pagination.MaxLimit, "PAGINATION_MAX_LIMIT")

	envcfg.OverrideBool(&cfg.Auth.Enabled, "AUTH_ENABLED")
	envcfg.OverrideString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	envcfg.OverrideString(&cfg.Auth.AdminUser, "ADMIN_USER")
	envcfg.OverrideString(&cfg.Auth.AdminPassword, "ADMIN_USER_PASSWORD")
	envcfg.OverrideDuration(&cfg.Auth.TokenTTL, "JWT_TOKEN_TTL")

	envcfg.OverrideStringList(&cfg.CORS.AllowedOrigins, "CORS_ALLOWED_ORIGINS")
	envcfg.OverrideInt(&cfg.CORS.MaxAge, "CORS_MAX_AGE")

	envcfg.OverrideBool(&cfg.RateLimit.Enabled, "RATELIMIT_ENABLED")
	envcfg.OverrideFloat(&cfg.RateLimit.RequestsPerSecond, "RATELIMIT_RPS")
	envcfg.OverrideInt(&cfg.RateLimit.Burst, "RATELIMIT_BURST")
	envcfg.OverrideStringList(&cfg.RateLimit.TrustedProxies, "RATELIMIT_TRUSTED_PROXIES")

	envcfg.OverrideBool(&cfg.Tracing.Enabled, "TRACING_ENABLED")
	envcfg.OverrideFloat(&cfg.Tracing.SampleRatio, "TRACING_SAMPLE_RATIO")

	envcfg.OverrideBool(&cfg.Security.CSPEnabled, "CSP_ENABLED")
	envcfg.OverrideBool(&cfg.Security.CSPReportOnly, "CSP_REPORT_ONLY")
	envcfg.OverrideString(&cfg.Security.CSPReportURI, "CSP_REPORT_URI")
	envcfg.OverrideInt(&cfg.Security.HSTSMaxAge, "HSTS_MAX_AGE")
}

// Validate reports every unusable setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if err := validateBaseURL(c.Server.PublicBaseURL); err != nil {
		errs = append(errs, err)
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			errs = append(errs, errors.New("store.mongo_uri is required for the mongo driver"))
		}
		if c.Store.MongoDatabase == "" || c.Store.MongoCollection == "" {
			errs = append(errs, errors.New("store.mongo_database and store.mongo_collection are required"))
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("store.database_url is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver must be %q or %q, got %q", DriverMongo, DriverPostgres, c.Store.Driver))
	}

	switch c.Assets.Provider {
	case AssetsCloudinary:
		hasParts := c.Assets.CloudinaryCloudName != "" && c.Assets.CloudinaryAPIKey != "" && c.Assets.CloudinaryAPISecret != ""
		if c.Assets.CloudinaryURL == "" && !hasParts {
			errs = append(errs, errors.New("cloudinary requires assets.cloudinary_url or cloud name, api key and api secret"))
		}
	case AssetsLocal:
		if c.Assets.LocalDir == "" {
			errs = append(errs, errors.New("assets.local_dir is required for the local provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("assets.provider must be %q or %q, got %q", AssetsCloudinary, AssetsLocal, c.Assets.Provider))
	}
	if c.Assets.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("assets.max_upload_bytes must be positive"))
	}
	if c.Assets.BreakerFailureRatio <= 0 || c.Assets.BreakerFailureRatio > 1 {
		errs = append(errs, errors.New("assets.breaker_failure_ratio must be in (0, 1]"))
	}

	if c.Pagination.DefaultLimit < 1 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		errs = append(errs, errors.New("pagination.default_limit must be positive and not exceed pagination.max_limit"))
	}

	if c.Auth.Enabled {
		errs = append(errs, c.Auth.validate()...)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		errs = append(errs, errors.New("rate_limit.requests_per_second and rate_limit.burst must be positive"))
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, errors.New("tracing.sample_ratio must be in [0, 1]"))
	}

	if c.Security.HSTSMaxAge < 0 {
		errs = append(errs, errors.New("security.hsts_max_age must not be negative"))
	}

	return errors.Join(errs...)
}

func (a AuthConfig) validate() []error {
	var errs []error
	if len(a.JWTSecret) < minJWTSecretLength {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least %d characters", minJWTSecretLength))
	}
	// よくある弱い秘密鍵を拒否
	for _, weak := range []string{"secret", "password", "changeme", "default"} {
		if strings.Contains(strings.ToLower(a.JWTSecret), weak) {
			errs = append(errs, errors.New("auth.jwt_secret must not contain a common weak value"))
			break
		}
	}
	if a.AdminUser == "" || a.AdminPassword == "" {
		errs = append(errs, errors.New("auth.admin_user and auth.admin_password are required when auth is enabled"))
	}
	if a.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	return errs
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("server.public_base_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server.public_base_url must be an absolute http(s) URL, got %q", raw)
	}
	return nil
}
