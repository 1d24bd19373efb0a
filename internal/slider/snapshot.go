package slider

import (
	"github.com/google/uuid"
	"github.com/lucax88x/clockslider/internal/clock"
	"github.com/lucax88x/clockslider/internal/geometry"
	"github.com/lucax88x/clockslider/internal/rotation"
	"github.com/lucax88x/clockslider/internal/timeofday"
)

// Snapshot is everything a renderer needs to draw one frame. Angles are
// radians clockwise from 12 o'clock.
type Snapshot struct {
	ClockType clock.Type

	Start        timeofday.TimeOfDay
	Finish       timeofday.TimeOfDay
	StartAngle   float64
	FinishAngle  float64
	StartPeriod  timeofday.Period
	FinishPeriod timeofday.Period

	RotationCount rotation.Count
	TimeRange     int
	Active        Handle

	StartLocked bool

	// id of the current or most recent drag, uuid.Nil before the first one
	DragID uuid.UUID

	// hour hand of the current time of day
	Now      timeofday.TimeOfDay
	NowAngle float64
}

func (c *Controller) Snapshot() Snapshot {
	one := c.slice.ClockType().OneRotation()
	now := timeofday.Now(c.clock)

	return Snapshot{
		ClockType:     c.slice.ClockType(),
		Start:         c.slice.Start(),
		Finish:        c.slice.Finish(),
		StartAngle:    c.angle(Start),
		FinishAngle:   c.angle(Finish),
		StartPeriod:   c.slice.StartPeriod(),
		FinishPeriod:  c.slice.FinishPeriod(),
		RotationCount: c.slice.RotationCount(),
		TimeRange:     c.slice.TimeRange(),
		Active:        c.active,
		StartLocked:   c.slice.StartLockedToMidnight(),
		DragID:        c.dragID,
		Now:           now,
		NowAngle:      geometry.MinutesToAngle(float64(now.TotalMinutes()), one),
	}
}

// SetInitialDuration places the finish hand minutes after the start hand.
// It is ignored while a drag is in progress.
func (c *Controller) SetInitialDuration(minutes int) {
	if c.active != None {
		return
	}
	c.slice.SetInitialDuration(minutes)
}

// IncrementDuration is ignored while a drag is in progress.
func (c *Controller) IncrementDuration(minutes int) {
	if c.active != None {
		return
	}
	c.slice.IncrementDuration(minutes)
}

// SetPeriods switches the hands between AM and PM on a 12-hour face.
func (c *Controller) SetPeriods(start, finish timeofday.Period) {
	if c.active != None {
		return
	}

	c.slice.SetStartPeriod(start)
	c.slice.SetFinishPeriod(finish)
}
