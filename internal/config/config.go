// Package config resolves the application configuration from command-line
// flags, NPCREADY_ environment variables, an optional YAML roster file and
// built-in defaults, in that order of priority.
package config

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	apperrors "github.com/agbru/npcready/internal/errors"
)

const (
	// EnvPrefix is prepended to every environment variable override.
	EnvPrefix = "NPCREADY_"
	// DefaultDeadline is the readiness deadline used when nothing else is set.
	DefaultDeadline = 10 * time.Second
	// DefaultLogLevel is the zerolog level name used by default.
	DefaultLogLevel = "info"
)

// AppConfig is the resolved configuration of a readiness run.
type AppConfig struct {
	// Deadline bounds the whole coordination attempt.
	Deadline time.Duration
	// RosterFile is an optional YAML roster; empty means the built-in roster.
	RosterFile string
	// LogLevel is a zerolog level name.
	LogLevel string
	// MetricsAddr, when non-empty, enables the probe server on that address.
	MetricsAddr string
	// Quiet suppresses the spinner and decorations.
	Quiet bool
	// NoColor disables styled output.
	NoColor bool
	// Hold keeps the probe server running after the outcome until interrupted.
	Hold bool
}

// Defaults returns the configuration used when no source overrides a value.
func Defaults() AppConfig {
	return AppConfig{
		Deadline: DefaultDeadline,
		LogLevel: DefaultLogLevel,
	}
}

// BindFlags registers the configuration flags on fs, writing into cfg.
func BindFlags(fs *pflag.FlagSet, cfg *AppConfig) {
	fs.DurationVarP(&cfg.Deadline, "deadline", "d", cfg.Deadline, "readiness deadline for the whole roster")
	fs.StringVarP(&cfg.RosterFile, "roster", "r", cfg.RosterFile, "YAML roster file (default: built-in NPC roster)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve /healthz, /readyz and /metrics on this address")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "print only the outcome")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable styled output")
	fs.BoolVar(&cfg.Hold, "hold", cfg.Hold, "keep the probe server up after the outcome until interrupted")
}

// Resolve completes cfg, whose fields already hold flag values or defaults,
// with environment overrides and the roster file. It returns the loaded
// roster, or nil when no roster file is configured.
func Resolve(fs *pflag.FlagSet, cfg AppConfig) (AppConfig, *Roster, error) {
	fromEnv, err := applyEnvOverrides(&cfg, fs)
	if err != nil {
		return cfg, nil, err
	}

	var roster *Roster
	if cfg.RosterFile != "" {
		r, err := LoadRoster(cfg.RosterFile)
		if err != nil {
			return cfg, nil, err
		}
		roster = r
		if r.Deadline > 0 && !isFlagSet(fs, "deadline") && !fromEnv["DEADLINE"] {
			cfg.Deadline = r.Deadline
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, roster, nil
}

// Validate checks the resolved configuration.
func (c AppConfig) Validate() error {
	if c.Deadline <= 0 {
		return apperrors.NewConfigError("deadline must be positive, got %s", c.Deadline)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	if c.Hold && c.MetricsAddr == "" {
		return apperrors.NewConfigError("--hold requires --metrics-addr")
	}
	return nil
}
