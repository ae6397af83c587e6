package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"newsroom/internal/config"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,               // Maximum number of open connections
		MaxIdleConns:    10,               // Maximum number of idle connections
		ConnMaxLifetime: 1 * time.Hour,    // Maximum lifetime of a connection
		ConnMaxIdleTime: 30 * time.Minute, // Maximum idle time of a connection
	}
}

// connectionConfigFrom takes the pool settings from the store section,
// keeping the defaults for non-positive values.
func connectionConfigFrom(sc config.StoreConfig) ConnectionConfig {
	cfg := DefaultConnectionConfig()
	if sc.MaxOpenConns > 0 {
		cfg.MaxOpenConns = sc.MaxOpenConns
	}
	if sc.MaxIdleConns > 0 {
		cfg.MaxIdleConns = sc.MaxIdleConns
	}
	if sc.ConnMaxLifetime > 0 {
		cfg.ConnMaxLifetime = sc.ConnMaxLifetime
	}
	if sc.ConnMaxIdleTime > 0 {
		cfg.ConnMaxIdleTime = sc.ConnMaxIdleTime
	}
	return cfg
}

// OpenPostgres creates and configures a connection pool for the postgres
// driver and verifies it with a ping.
func OpenPostgres(ctx context.Context, sc config.StoreConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", sc.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	cfg := connectionConfigFrom(sc)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout(sc))
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	slog.Info("database connection established successfully", slog.String("driver", config.DriverPostgres))
	return db, nil
}

func connectTimeout(sc config.StoreConfig) time.Duration {
	if sc.ConnectTimeout > 0 {
		return sc.ConnectTimeout
	}
	return 5 * time.Second
}
