// Package pagination implements page/limit pagination for list endpoints.
package pagination

// Config bounds the page and limit query parameters.
type Config struct {
	DefaultLimit int // used when limit is absent
	MaxLimit     int // upper bound for limit
}

// DefaultConfig returns limit=20, max=100.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// NewConfig builds a Config from configured values, falling back to the
// defaults for non-positive inputs.
func NewConfig(defaultLimit, maxLimit int) Config {
	cfg := DefaultConfig()
	if maxLimit > 0 {
		cfg.MaxLimit = maxLimit
	}
	if defaultLimit > 0 {
		cfg.DefaultLimit = defaultLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return cfg
}
