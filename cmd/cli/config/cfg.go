package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lucax88x/clockslider/cmd/cli/config/settings"
	"github.com/lucax88x/clockslider/internal/clock"
	"github.com/lucax88x/clockslider/internal/homedir"
	"github.com/lucax88x/clockslider/internal/slider"
	"github.com/lucax88x/clockslider/internal/timeofday"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const EnvPrefix = "CLOCKSLIDER"

const (
	KeyClock              = "clock"
	KeySize               = "size"
	KeyRingWidth          = "ring_width"
	KeyDragTolerance      = "drag_tolerance"
	KeyIncrementMinutes   = "increment_minutes"
	KeyHands              = "hands"
	KeyStart              = "start"
	KeyFinish             = "finish"
	KeyMaxDurationMinutes = "max_duration_minutes"
	KeyLogLevel           = "log_level"
	KeyFifo               = "fifo"
)

type Cfg struct {
	ClockType          string   `yaml:"clock"`
	Size               int      `yaml:"size"`
	RingWidth          int      `yaml:"ring_width"`
	DragTolerance      int      `yaml:"drag_tolerance"`
	IncrementMinutes   int      `yaml:"increment_minutes"`
	Hands              int      `yaml:"hands"`
	Start              string   `yaml:"start"`
	Finish             string   `yaml:"finish"`
	MaxDurationMinutes *int     `yaml:"max_duration_minutes"`
	LogLevel           string   `yaml:"log_level"`
	Fifo               string   `yaml:"fifo"`
	OnRelease          []string `yaml:"on_release"`
}

func Defaults() *Cfg {
	return &Cfg{
		ClockType:        settings.Slider.ClockType,
		Size:             *settings.Slider.Size,
		RingWidth:        *settings.Slider.RingWidth,
		DragTolerance:    *settings.Slider.DragTolerance,
		IncrementMinutes: *settings.Slider.IncrementMinutes,
		Hands:            *settings.Slider.Hands,
		Start:            settings.Slider.Start,
		Finish:           settings.Slider.Finish,
		LogLevel:         settings.Slider.LogLevel,
		Fifo:             settings.FifoPath,
	}
}

// ReadYaml loads config.yaml from the configuration directory. A missing
// file is not an error: the defaults are returned instead.
func ReadYaml() (*Cfg, error) {
	dir, err := homedir.Get()

	if err != nil {
		//nolint:errorlint // no wrap
		return nil, fmt.Errorf("config: error getting home dir. %v", err)
	}

	return ReadYamlFrom(filepath.Join(dir, "config.yaml"))
}

func ReadYamlFrom(path string) (*Cfg, error) {
	cfg := Defaults()

	yamlData, err := os.ReadFile(path)

	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		//nolint:errorlint // no wrap
		return nil, fmt.Errorf("config: could not read file. %v", err)
	}

	err = yaml.Unmarshal(yamlData, cfg)

	if err != nil {
		//nolint:errorlint // no wrap
		return nil, fmt.Errorf("config: could not unmarshal cfg. %v", err)
	}

	return cfg, nil
}

// ApplyViper overrides the file values with whatever viper has set, that
// is CLOCKSLIDER_* variables and flags bound to the keys above.
func (c *Cfg) ApplyViper(v *viper.Viper) {
	overrideString := func(key string, target *string) {
		if v.IsSet(key) {
			*target = v.GetString(key)
		}
	}

	overrideInt := func(key string, target *int) {
		if v.IsSet(key) {
			*target = v.GetInt(key)
		}
	}

	overrideString(KeyClock, &c.ClockType)
	overrideInt(KeySize, &c.Size)
	overrideInt(KeyRingWidth, &c.RingWidth)
	overrideInt(KeyDragTolerance, &c.DragTolerance)
	overrideInt(KeyIncrementMinutes, &c.IncrementMinutes)
	overrideInt(KeyHands, &c.Hands)
	overrideString(KeyStart, &c.Start)
	overrideString(KeyFinish, &c.Finish)
	overrideString(KeyLogLevel, &c.LogLevel)
	overrideString(KeyFifo, &c.Fifo)

	if v.IsSet(KeyMaxDurationMinutes) {
		maxDuration := v.GetInt(KeyMaxDurationMinutes)
		c.MaxDurationMinutes = &maxDuration
	}
}

// ExpandPaths resolves a leading ~ in the fifo path.
func (c *Cfg) ExpandPaths() error {
	fifo, err := homedir.Expand(c.Fifo)

	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Fifo = fifo

	return nil
}

// Level falls back to info for an empty or unknown log level.
func (c *Cfg) Level() slog.Level {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func (c *Cfg) SliderOptions(clk clock.Clock) (slider.Options, error) {
	clockType, err := clock.ParseType(c.ClockType)

	if err != nil {
		return slider.Options{}, fmt.Errorf("config: %w", err)
	}

	start, err := timeofday.Parse(c.Start)

	if err != nil {
		return slider.Options{}, fmt.Errorf("config: invalid start: %w", err)
	}

	finish, err := timeofday.Parse(c.Finish)

	if err != nil {
		return slider.Options{}, fmt.Errorf("config: invalid finish: %w", err)
	}

	return slider.Options{
		ClockType:          clockType,
		Width:              float64(c.Size),
		Height:             float64(c.Size),
		RingWidth:          float64(c.RingWidth),
		DragTolerance:      float64(c.DragTolerance),
		Start:              start,
		Finish:             finish,
		MaxDurationMinutes: c.MaxDurationMinutes,
		IncrementMinutes:   c.IncrementMinutes,
		Hands:              c.Hands,
		Clock:              clk,
	}, nil
}
