// Package config provides helpers for layering environment variables over
// values that were already loaded from a configuration file.
//
// Every Override* helper leaves the destination untouched when the variable
// is unset or empty, so file values and built-in defaults survive. Values that
// cannot be parsed are ignored with a warning rather than aborting startup.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// OverrideString replaces *dst with the value of key when it is set.
//
// Example:
//
//	cfg.Store.MongoURI = "mongodb://localhost:27017"
//	OverrideString(&cfg.Store.MongoURI, "MONGO_URI")
func OverrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// OverrideInt replaces *dst with the integer value of key when it is set and valid.
func OverrideInt(dst *int, key string) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return
	}
	v, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		warnInvalid(key, valueStr, "integer", err)
		return
	}
	*dst = v
}

// OverrideInt64 is OverrideInt for 64-bit values such as byte sizes.
func OverrideInt64(dst *int64, key string) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return
	}
	v, err := strconv.ParseInt(strings.TrimSpace(valueStr), 10, 64)
	if err != nil {
		warnInvalid(key, valueStr, "integer", err)
		return
	}
	*dst = v
}

// OverrideFloat replaces *dst with the float value of key when it is set and valid.
func OverrideFloat(dst *float64, key string) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		warnInvalid(key, valueStr, "float", err)
		return
	}
	*dst = v
}

// OverrideBool replaces *dst with the boolean value of key.
//
// Accepted values are the ones strconv.ParseBool understands
// ("1", "t", "true", "0", "f", "false" and their capitalized forms).
func OverrideBool(dst *bool, key string) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return
	}
	v, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		warnInvalid(key, valueStr, "boolean", err)
		return
	}
	*dst = v
}

// OverrideDuration replaces *dst with a time.ParseDuration value ("30s", "1m").
func OverrideDuration(dst *time.Duration, key string) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return
	}
	v, err := time.ParseDuration(strings.TrimSpace(valueStr))
	if err != nil {
		warnInvalid(key, valueStr, "duration", err)
		return
	}
	*dst = v
}

// OverrideStringList replaces *dst with a comma-separated list.
// Whitespace is trimmed and empty items are dropped. A list that ends up
// empty leaves *dst unchanged.
//
// Example:
//
//	// CORS_ALLOWED_ORIGINS="http://localhost:5173, https://admin.example.com"
//	OverrideStringList(&cfg.CORS.AllowedOrigins, "CORS_ALLOWED_ORIGINS")
func OverrideStringList(dst *[]string, key string) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}

func warnInvalid(key, value, kind string, err error) {
	slog.Warn("invalid environment variable value, keeping configured value",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("expected", kind),
		slog.String("error", err.Error()))
}
