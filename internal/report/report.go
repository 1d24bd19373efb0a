package report

import (
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
	"github.com/lucax88x/clockslider/internal/slider"
	"gopkg.in/yaml.v2"
)

type Document struct {
	Clock         string  `yaml:"clock"`
	Start         string  `yaml:"start"`
	Finish        string  `yaml:"finish"`
	StartPeriod   string  `yaml:"start_period"`
	FinishPeriod  string  `yaml:"finish_period"`
	StartAngle    float64 `yaml:"start_angle"`
	FinishAngle   float64 `yaml:"finish_angle"`
	RotationCount string  `yaml:"rotation_count"`
	RangeMinutes  int     `yaml:"range_minutes"`
	Active        string  `yaml:"active"`
	StartLocked   bool    `yaml:"start_locked,omitempty"`
	Drag          string  `yaml:"drag,omitempty"`
	Now           string  `yaml:"now"`
	NowAngle      float64 `yaml:"now_angle"`
}

func FromSnapshot(s slider.Snapshot) Document {
	layout := s.ClockType.Layout()

	var drag string
	if s.DragID != uuid.Nil {
		drag = s.DragID.String()
	}

	return Document{
		Clock:         s.ClockType.String(),
		Start:         s.Start.Format(layout),
		Finish:        s.Finish.Format(layout),
		StartPeriod:   s.StartPeriod.String(),
		FinishPeriod:  s.FinishPeriod.String(),
		StartAngle:    round(s.StartAngle),
		FinishAngle:   round(s.FinishAngle),
		RotationCount: s.RotationCount.String(),
		RangeMinutes:  s.TimeRange,
		Active:        s.Active.String(),
		StartLocked:   s.StartLocked,
		Drag:          drag,
		Now:           s.Now.Format(layout),
		NowAngle:      round(s.NowAngle),
	}
}

// Write prints s as a single yaml document.
func Write(w io.Writer, s slider.Snapshot) error {
	bytes, err := yaml.Marshal(FromSnapshot(s))

	if err != nil {
		//nolint:errorlint // no wrap
		return fmt.Errorf("report: could not marshal snapshot. %v", err)
	}

	if _, err := fmt.Fprintf(w, "---\n%s", bytes); err != nil {
		return fmt.Errorf("report: could not write snapshot: %w", err)
	}

	return nil
}

func round(radians float64) float64 {
	return math.Round(radians*10000) / 10000
}
