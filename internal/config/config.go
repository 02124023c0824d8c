// Package config loads process settings from FORMS_* environment variables.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-forms/internal/errors"
	"github.com/KirkDiggler/rpg-forms/internal/orchestrators/transformation"
)

// Storage backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the full process configuration
type Config struct {
	GRPCPort  int    `env:"FORMS_GRPC_PORT" envDefault:"50051"`
	AdminAddr string `env:"FORMS_ADMIN_ADDR" envDefault:":8080"`
	LogFormat string `env:"FORMS_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"FORMS_LOG_LEVEL" envDefault:"info"`

	Store          string   `env:"FORMS_STORE" envDefault:"memory"`
	RedisEndpoints []string `env:"FORMS_REDIS_ENDPOINTS" envSeparator:"," envDefault:"localhost:6379"`
	RedisTLS       bool     `env:"FORMS_REDIS_TLS"`
	SQLitePath     string   `env:"FORMS_SQLITE_PATH" envDefault:"forms.db"`

	TickInterval time.Duration `env:"FORMS_TICK_INTERVAL" envDefault:"50ms"`

	Policy PolicyConfig
}

// PolicyConfig mirrors transformation.Policy
type PolicyConfig struct {
	TransformTicks           int64   `env:"FORMS_TRANSFORM_TICKS" envDefault:"30"`
	ExhaustionTicks          int64   `env:"FORMS_EXHAUSTION_TICKS" envDefault:"600"`
	FatigueMultiplier        float64 `env:"FORMS_FATIGUE_MULTIPLIER" envDefault:"2"`
	MasteryTicks             int     `env:"FORMS_MASTERY_TICKS" envDefault:"300"`
	MasteryTicksSpecialTrait int     `env:"FORMS_MASTERY_TICKS_SPECIAL_TRAIT" envDefault:"150"`
	MasteryIncrement         float64 `env:"FORMS_MASTERY_INCREMENT" envDefault:"0.01"`
	MaxIntensityLevel        int     `env:"FORMS_MAX_INTENSITY_LEVEL" envDefault:"20"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return &cfg, nil
}

// Validate checks every setting
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("GRPCPort", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRequired("AdminAddr", c.AdminAddr, vb)
	errors.ValidateEnum("LogFormat", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.InvalidField("LogLevel", "must be one of: debug, info, warn, error")
	}
	errors.ValidateEnum("Store", c.Store, []string{StoreMemory, StoreRedis, StoreSQLite}, vb)

	switch c.Store {
	case StoreRedis:
		if len(c.RedisEndpoints) == 0 {
			vb.RequiredField("RedisEndpoints")
		}
	case StoreSQLite:
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	}

	if c.TickInterval <= 0 {
		vb.InvalidField("TickInterval", "must be positive")
	}

	if err := c.TransformationPolicy().Validate(); err != nil {
		vb.InvalidField("Policy", errors.GetMessage(err))
	}

	return vb.Build()
}

// TransformationPolicy converts the policy settings
func (c *Config) TransformationPolicy() transformation.Policy {
	return transformation.Policy{
		TransformTicks:           c.Policy.TransformTicks,
		ExhaustionTicks:          c.Policy.ExhaustionTicks,
		FatigueMultiplier:        c.Policy.FatigueMultiplier,
		MasteryTicks:             c.Policy.MasteryTicks,
		MasteryTicksSpecialTrait: c.Policy.MasteryTicksSpecialTrait,
		MasteryIncrement:         c.Policy.MasteryIncrement,
		MaxIntensityLevel:        c.Policy.MaxIntensityLevel,
	}
}

// SlogLevel returns the configured log level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
