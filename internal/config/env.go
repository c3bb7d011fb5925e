package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/npcready/internal/errors"
)

// isFlagSet reports whether a flag was explicitly set on the command line.
func isFlagSet(fs *pflag.FlagSet, name string) bool {
	if fs == nil {
		return false
	}
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

// isFlagSetAny reports whether any of the named flags was explicitly set.
func isFlagSetAny(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an environment key (without the NPCREADY_ prefix) to the
// flags that take precedence over it and the function applying its value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

var envOverrides = []envOverride{
	{"DEADLINE", []string{"deadline"}, func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Deadline = parsed
		return nil
	}},

	{"ROSTER", []string{"roster"}, func(c *AppConfig, v string) error {
		c.RosterFile = v
		return nil
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error {
		c.LogLevel = strings.ToLower(v)
		return nil
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) error {
		c.MetricsAddr = v
		return nil
	}},

	{"QUIET", []string{"quiet"}, func(c *AppConfig, v string) error {
		c.Quiet = parseBoolEnv(v, c.Quiet)
		return nil
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) error {
		c.NoColor = parseBoolEnv(v, c.NoColor)
		return nil
	}},
	{"HOLD", []string{"hold"}, func(c *AppConfig, v string) error {
		c.Hold = parseBoolEnv(v, c.Hold)
		return nil
	}},
}

// parseBoolEnv accepts "true", "1", "yes" and "false", "0", "no"
// (case-insensitive); anything else yields defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies NPCREADY_* values for every flag that was not
// set explicitly and returns the keys it applied. A value that cannot be
// parsed is a configuration error; malformed booleans keep the current
// setting.
func applyEnvOverrides(config *AppConfig, fs *pflag.FlagSet) (map[string]bool, error) {
	applied := make(map[string]bool)
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		val := os.Getenv(EnvPrefix + o.envKey)
		if val == "" {
			continue
		}
		if err := o.apply(config, val); err != nil {
			return applied, apperrors.NewConfigError("invalid %s%s %q: %v", EnvPrefix, o.envKey, val, err)
		}
		applied[o.envKey] = true
	}
	return applied, nil
}
