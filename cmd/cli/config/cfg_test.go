package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucax88x/clockslider/cmd/cli/config"
	"github.com/lucax88x/clockslider/internal/clock"
	"github.com/lucax88x/clockslider/internal/timeofday"
	gohomedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestReadYamlFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.ReadYamlFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.Defaults(), cfg)
	assert.Equal(t, "12h", cfg.ClockType)
	assert.Equal(t, 200, cfg.Size)
	assert.Nil(t, cfg.MaxDurationMinutes)
}

func TestReadYamlFromOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
clock: 24h
size: 320
increment_minutes: 15
start: "08:30"
max_duration_minutes: 600
log_level: debug
on_release: ["notify-send", "range changed"]
`)

	cfg, err := config.ReadYamlFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "24h", cfg.ClockType)
	assert.Equal(t, 320, cfg.Size)
	assert.Equal(t, 44, cfg.RingWidth)
	assert.Equal(t, 15, cfg.IncrementMinutes)
	assert.Equal(t, "08:30", cfg.Start)
	assert.Equal(t, "03:00", cfg.Finish)
	require.NotNil(t, cfg.MaxDurationMinutes)
	assert.Equal(t, 600, *cfg.MaxDurationMinutes)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, []string{"notify-send", "range changed"}, cfg.OnRelease)
}

func TestReadYamlFromInvalidYaml(t *testing.T) {
	path := writeConfig(t, "size: [not, a, number")

	_, err := config.ReadYamlFrom(path)
	require.Error(t, err)
}

func TestApplyViper(t *testing.T) {
	cfg := config.Defaults()

	v := viper.New()
	v.Set(config.KeyClock, "24")
	v.Set(config.KeyFinish, "18:45")
	v.Set(config.KeyMaxDurationMinutes, 90)
	v.Set(config.KeyHands, 1)

	cfg.ApplyViper(v)

	assert.Equal(t, "24", cfg.ClockType)
	assert.Equal(t, "18:45", cfg.Finish)
	assert.Equal(t, "00:00", cfg.Start)
	assert.Equal(t, 1, cfg.Hands)
	require.NotNil(t, cfg.MaxDurationMinutes)
	assert.Equal(t, 90, *cfg.MaxDurationMinutes)
}

func TestApplyViperReadsEnvironment(t *testing.T) {
	t.Setenv("CLOCKSLIDER_SIZE", "500")

	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()

	cfg := config.Defaults()
	cfg.ApplyViper(v)

	assert.Equal(t, 500, cfg.Size)
	assert.Equal(t, 44, cfg.RingWidth)
}

func TestLevelFallsBackToInfo(t *testing.T) {
	cfg := config.Defaults()

	cfg.LogLevel = "verbose"
	assert.Equal(t, slog.LevelInfo, cfg.Level())

	cfg.LogLevel = "warn"
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestSliderOptions(t *testing.T) {
	cfg := config.Defaults()
	cfg.ClockType = "24h"
	cfg.Start = "06:15"

	options, err := cfg.SliderOptions(clock.NewSystemClock())
	require.NoError(t, err)

	assert.Equal(t, clock.TwentyFourHour, options.ClockType)
	assert.Equal(t, timeofday.New(6, 15), options.Start)
	assert.Equal(t, timeofday.New(3, 0), options.Finish)
	assert.InDelta(t, 200, options.Width, 0.0001)
	assert.InDelta(t, 44, options.RingWidth, 0.0001)
	assert.Equal(t, 5, options.IncrementMinutes)
}

func TestSliderOptionsRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Cfg)
	}{
		{"clock", func(cfg *config.Cfg) { cfg.ClockType = "36h" }},
		{"start", func(cfg *config.Cfg) { cfg.Start = "25:00" }},
		{"finish", func(cfg *config.Cfg) { cfg.Finish = "noon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(cfg)

			_, err := cfg.SliderOptions(clock.NewSystemClock())
			require.Error(t, err)
		})
	}
}

func TestExpandPaths(t *testing.T) {
	gohomedir.DisableCache = true

	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := config.Defaults()
	cfg.Fifo = "~/clockslider.fifo"

	require.NoError(t, cfg.ExpandPaths())
	assert.Equal(t, filepath.Join(home, "clockslider.fifo"), cfg.Fifo)

	cfg.Fifo = "~other/clockslider.fifo"
	require.Error(t, cfg.ExpandPaths())
}
