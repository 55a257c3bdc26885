package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if CALLBREAK_CONFIG is set
//  3. env (prefix CALLBREAK_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("CALLBREAK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CALLBREAK_LOG_LEVEL, CALLBREAK_REDIS_ADDR, ...
	// Map env keys like CALLBREAK_REDIS_ADDR -> redis_addr (flat keys),
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("CALLBREAK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "callbreak_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Storage != StorageMemory && cfg.Storage != StorageRedis {
		return nil, fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, cfg.Storage)
	}
	if cfg.Storage == StorageRedis && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("%w: redis_addr must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}
