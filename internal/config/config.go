// Package config loads service settings from XP_OPTIMIZER_* environment
// variables.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "XP_OPTIMIZER_"

// Log levels accepted by LogLevel
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Config holds every tunable of the service and CLI
type Config struct {
	GRPCPort int `env:"GRPC_PORT" envDefault:"50051"`
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// RedisAddr enables the shared result cache. Empty keeps results in memory.
	RedisAddr string        `env:"REDIS_ADDR"`
	RedisDB   int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"24h"`

	// MaxNodes of zero uses the solver default
	MaxNodes  int  `env:"MAX_NODES" envDefault:"0"`
	WarmStart bool `env:"WARM_START" envDefault:"true"`

	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	TraceStdout     bool          `env:"TRACE_STDOUT" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses the given variables instead of the process environment
// when environment is non-nil. Names in the map carry the prefix.
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks ranges and enums
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRange("HTTP_PORT", c.HTTPPort, 1, 65535, vb)
	if c.GRPCPort == c.HTTPPort {
		vb.Field("HTTP_PORT", "must differ from GRPC_PORT")
	}
	if c.RedisDB < 0 {
		vb.Field("REDIS_DB", "must not be negative")
	}
	if c.CacheTTL < 0 {
		vb.Field("CACHE_TTL", "must not be negative")
	}
	if c.MaxNodes < 0 {
		vb.Field("MAX_NODES", "must not be negative")
	}
	errors.ValidateEnum("LOG_LEVEL", c.LogLevel,
		[]string{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}, vb)
	if c.ShutdownTimeout <= 0 {
		vb.Field("SHUTDOWN_TIMEOUT", "must be positive")
	}

	return vb.Build()
}

// SlogLevel converts LogLevel for slog handlers
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// UseRedis reports whether results are cached in Redis
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}
