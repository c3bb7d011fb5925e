package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/npcready/internal/errors"
)

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"No", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseBoolEnv(tt.in, tt.def), "parseBoolEnv(%q, %v)", tt.in, tt.def)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"DEADLINE", "2500ms")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "DEBUG")
	t.Setenv(EnvPrefix+"METRICS_ADDR", ":9102")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"NO_COLOR", "1")
	t.Setenv(EnvPrefix+"HOLD", "true")

	fs, cfg := newFlagSet(t)
	applied, err := applyEnvOverrides(cfg, fs)
	require.NoError(t, err)

	assert.True(t, applied["DEADLINE"])
	assert.Equal(t, 2500*time.Millisecond, cfg.Deadline)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9102", cfg.MetricsAddr)
	assert.True(t, cfg.Quiet)
	assert.True(t, cfg.NoColor)
	assert.True(t, cfg.Hold)
}

func TestApplyEnvOverridesRespectsFlags(t *testing.T) {
	t.Setenv(EnvPrefix+"QUIET", "false")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "error")

	fs, cfg := newFlagSet(t, "-q", "--log-level", "warn")
	applied, err := applyEnvOverrides(cfg, fs)
	require.NoError(t, err)

	assert.Empty(t, applied)
	assert.True(t, cfg.Quiet, "short flag counts as explicitly set")
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestApplyEnvOverridesRejectsMalformedDeadline(t *testing.T) {
	t.Setenv(EnvPrefix+"DEADLINE", "soon")

	fs, cfg := newFlagSet(t)
	applied, err := applyEnvOverrides(cfg, fs)

	require.Error(t, err)
	assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCode(err))
	assert.Contains(t, err.Error(), `NPCREADY_DEADLINE "soon"`)
	assert.False(t, applied["DEADLINE"])
	assert.Equal(t, DefaultDeadline, cfg.Deadline)
}

func TestApplyEnvOverridesMalformedBoolKeepsSetting(t *testing.T) {
	t.Setenv(EnvPrefix+"QUIET", "maybe")

	fs, cfg := newFlagSet(t)
	_, err := applyEnvOverrides(cfg, fs)

	require.NoError(t, err)
	assert.False(t, cfg.Quiet)
}

func TestIsFlagSetNilFlagSet(t *testing.T) {
	assert.False(t, isFlagSet(nil, "deadline"))
}
