// Package slider turns drag gestures on a clock face into changes of a
// time slice.
package slider

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/lucax88x/clockslider/internal/clock"
	"github.com/lucax88x/clockslider/internal/geometry"
	"github.com/lucax88x/clockslider/internal/rotation"
	"github.com/lucax88x/clockslider/internal/timeofday"
	"github.com/lucax88x/clockslider/internal/timeslice"
)

// Controller is not safe for concurrent use.
type Controller struct {
	logger *slog.Logger
	clock  clock.Clock
	track  *geometry.Track
	slice  *timeslice.TimeSlice

	increment    int
	startHandle  HitTester
	finishHandle HitTester

	active      Handle
	lastDragged Handle
	previous    geometry.Point
	beforeDrag  *timeslice.TimeSlice
	dragID      uuid.UUID

	// angle of the hand under the finger; follows the touch smoothly while
	// the stored time is whole minutes
	activeAngle float64
}

func NewController(logger *slog.Logger, options Options) (*Controller, error) {
	options, err := options.withDefaults()

	if err != nil {
		return nil, err
	}

	track, err := geometry.TrackForFrame(options.Width, options.Height, options.RingWidth, options.DragTolerance)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}

	slice, err := timeslice.New(timeslice.Params{
		ClockType:             options.ClockType,
		Start:                 options.Start,
		Finish:                options.Finish,
		RotationCount:         rotation.First,
		MaxDurationMinutes:    options.MaxDurationMinutes,
		StartLockedToMidnight: options.StartLockedToMidnight,
	})

	if err != nil {
		return nil, fmt.Errorf("slider: could not create time slice: %w", err)
	}

	c := &Controller{
		logger:       logger,
		clock:        options.Clock,
		track:        track,
		slice:        slice,
		increment:    options.IncrementMinutes,
		startHandle:  options.StartHandle,
		finishHandle: options.FinishHandle,
	}

	thumbRadius := options.RingWidth / 2

	if c.startHandle == nil {
		c.startHandle = circleHitTester(func() geometry.Point { return c.ThumbCenter(Start) }, thumbRadius)
	}

	if c.finishHandle == nil {
		c.finishHandle = circleHitTester(func() geometry.Point { return c.ThumbCenter(Finish) }, thumbRadius)
	}

	// a slice spanning more than a face starts on the second lap
	if timeslice.TimeSpanBetween(slice.Start(), slice.Finish()) > options.ClockType.OneRotation() {
		slice.AdvanceRotationCountIfAllowed()
	}

	return c, nil
}

func (c *Controller) Slice() *timeslice.TimeSlice {
	return c.slice
}

func (c *Controller) Track() *geometry.Track {
	return c.track
}

func (c *Controller) Active() Handle {
	return c.active
}

// ThumbCenter is the screen point where the thumb of h is drawn.
func (c *Controller) ThumbCenter(h Handle) geometry.Point {
	one := c.slice.ClockType().OneRotation()
	return c.track.ThumbCenterPoint(geometry.AngleToMinutes(c.angle(h), one), one)
}

// BeginDrag selects the handle under p. When both thumbs overlap the one
// dragged last wins, and a start locked to midnight is never selected.
func (c *Controller) BeginDrag(p geometry.Point) Handle {
	if c.active != None {
		c.EndDrag(c.previous)
	}

	c.previous = p
	c.active = c.hitTest(p)

	if c.active == None {
		c.logger.Debug("slider: no handle under point", slog.String("point", p.String()))
		return None
	}

	c.dragID = uuid.New()
	c.beforeDrag = c.slice.Clone()
	c.activeAngle = c.timeAngle(c.active)

	c.logger.Debug(
		"slider: drag started",
		slog.String("drag", c.dragID.String()),
		slog.String("handle", c.active.String()),
		slog.String("point", p.String()),
	)

	return c.active
}

func (c *Controller) hitTest(p geometry.Point) Handle {
	startHit := func() bool {
		return !c.slice.StartLockedToMidnight() && c.startHandle.PointInsideHandle(p)
	}

	finishHit := func() bool {
		return c.finishHandle.PointInsideHandle(p)
	}

	if c.lastDragged == Finish {
		if finishHit() {
			return Finish
		}
		if startHit() {
			return Start
		}
		return None
	}

	if startHit() {
		return Start
	}

	if finishHit() {
		return Finish
	}

	return None
}

// ContinueDrag moves the active handle towards p. It reports false when
// there is no active handle or p does not map onto the track; the slice is
// then left untouched.
func (c *Controller) ContinueDrag(p geometry.Point) bool {
	if c.active == None {
		return false
	}

	c.previous = p
	c.lastDragged = c.active

	one := c.slice.ClockType().OneRotation()
	faceMinutes, angle, ok := c.track.TouchToMinutes(p, one)

	if !ok {
		c.logger.Debug(
			"slider: ignoring sample",
			slog.String("drag", c.dragID.String()),
			slog.String("point", p.String()),
		)
		return false
	}

	oldArc := c.slice.Arc()

	switch c.active {
	case Start:
		c.slice.ChangeStartTimeOfDayUsingClockFaceTime(faceMinutes)
	case Finish:
		c.slice.ChangeFinishTimeOfDayUsingClockFaceTime(faceMinutes)
	case None:
	}

	newArc := c.slice.Arc()
	before := c.slice.RotationCount()

	c.slice.ChangeRotationCountIfNeeded(oldArc, newArc)
	c.activeAngle = angle

	if after := c.slice.RotationCount(); after != before {
		c.logger.Debug(
			"slider: rotation changed",
			slog.String("drag", c.dragID.String()),
			slog.String("from", before.String()),
			slog.String("to", after.String()),
		)
	}

	return true
}

// EndDrag releases the active handle, pulls it back within the maximum
// duration and snaps it to the configured increment. Calling it with no
// active handle does nothing.
func (c *Controller) EndDrag(p geometry.Point) Handle {
	released := c.active

	if released == None {
		return None
	}

	c.previous = p
	maxAllowed := c.slice.MaxAllowedMinutes()

	if c.slice.TimeRange() > maxAllowed {
		c.clamp(released, maxAllowed)
	}

	c.snap(released, maxAllowed)

	c.logger.Debug(
		"slider: drag ended",
		slog.String("drag", c.dragID.String()),
		slog.String("handle", released.String()),
		slog.String("start", c.slice.Start().String()),
		slog.String("finish", c.slice.Finish().String()),
		slog.Int("range", c.slice.TimeRange()),
	)

	c.reset()

	return released
}

// AbortDrag puts the slice back the way it was when the drag began.
func (c *Controller) AbortDrag() {
	if c.active == None {
		return
	}

	c.logger.Debug("slider: drag aborted", slog.String("drag", c.dragID.String()))

	*c.slice = *c.beforeDrag
	c.reset()
}

func (c *Controller) reset() {
	c.active = None
	c.beforeDrag = nil
}

// clamp walks the longest allowed arc from the fixed hand and moves the
// released hand to its end.
func (c *Controller) clamp(released Handle, maxAllowed int) {
	clockType := c.slice.ClockType()
	one := clockType.OneRotation()
	span := maxAllowed % one

	start := c.slice.Start()
	finish := c.slice.Finish()

	switch released {
	case Finish:
		from := c.track.ThumbCenterPoint(float64(start.TotalMinutes()), one)
		face := c.track.ArcEndMinutes(from, float64(span), one, true)

		clamped := timeofday.FromTotalMinutes(start.TotalMinutes() + maxAllowed)
		clamped.AdjustMinutesSlightly(timeslice.ConvertMinutesToSafeMinutes(face, clockType))
		c.slice.SetFinish(clamped)
	case Start:
		from := c.track.ThumbCenterPoint(float64(finish.TotalMinutes()), one)
		face := c.track.ArcEndMinutes(from, float64(span), one, false)

		clamped := timeofday.FromTotalMinutes(finish.TotalMinutes() - maxAllowed)
		clamped.AdjustMinutesSlightly(timeslice.ConvertMinutesToSafeMinutes(face, clockType))
		c.slice.SetStart(clamped)
	case None:
		return
	}

	if maxAllowed >= one {
		c.slice.SetRotationCount(rotation.Second)
	} else {
		c.slice.SetRotationCount(rotation.First)
	}

	c.logger.Debug(
		"slider: clamped to max duration",
		slog.String("drag", c.dragID.String()),
		slog.Int("max", maxAllowed),
	)
}

// snap rounds the released hand half up to a multiple of the increment.
// When rounding pushes the range over the limit, or lands the hand on the
// fixed hand so that a whole lap is lost, the hand steps one increment back
// towards the fixed hand.
func (c *Controller) snap(released Handle, maxAllowed int) {
	one := c.slice.ClockType().OneRotation()
	limit := min(maxAllowed, 2*one-c.increment)
	before := c.slice.TimeRange()

	outOfBounds := func() bool {
		after := c.slice.TimeRange()
		return after > limit || after < before-c.increment
	}

	switch released {
	case Finish:
		snapped := roundToIncrement(c.slice.Finish().TotalMinutes(), c.increment)
		c.slice.SetFinish(timeofday.FromTotalMinutes(snapped))

		if outOfBounds() {
			c.slice.SetFinish(timeofday.FromTotalMinutes(snapped - c.increment))
		}
	case Start:
		snapped := roundToIncrement(c.slice.Start().TotalMinutes(), c.increment)
		c.slice.SetStart(timeofday.FromTotalMinutes(snapped))

		if outOfBounds() {
			c.slice.SetStart(timeofday.FromTotalMinutes(snapped + c.increment))
		}
	case None:
	}
}

func roundToIncrement(minutes, increment int) int {
	return int(math.Floor(float64(minutes)/float64(increment)+0.5)) * increment
}

func (c *Controller) timeAngle(h Handle) float64 {
	one := c.slice.ClockType().OneRotation()

	switch h {
	case Start:
		return geometry.MinutesToAngle(float64(c.slice.Start().TotalMinutes()), one)
	case Finish:
		return geometry.MinutesToAngle(float64(c.slice.Finish().TotalMinutes()), one)
	default:
		return 0
	}
}

func (c *Controller) angle(h Handle) float64 {
	if h != None && h == c.active {
		return c.activeAngle
	}
	return c.timeAngle(h)
}
