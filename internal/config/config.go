// Package config defines tracker configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Storage backend names accepted by the Storage field.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Storage selects the game store backend: memory or redis.
	Storage string `koanf:"storage"`

	// RedisAddr, RedisPassword and RedisDB configure the redis backend.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// DefaultCurrency is the symbol offered when configuring stakes.
	DefaultCurrency string `koanf:"default_currency"`

	// HistoryLimit caps how many completed games a history view requests.
	HistoryLimit int `koanf:"history_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Storage:         StorageMemory,
		RedisAddr:       "localhost:6379",
		RedisPassword:   "",
		RedisDB:         0,
		DefaultCurrency: "$",
		HistoryLimit:    50,
	}
}
