package slider_test

import (
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lucax88x/clockslider/internal/clock"
	"github.com/lucax88x/clockslider/internal/geometry"
	"github.com/lucax88x/clockslider/internal/rotation"
	"github.com/lucax88x/clockslider/internal/slider"
	"github.com/lucax88x/clockslider/internal/timeofday"
	"github.com/lucax88x/clockslider/internal/timeslice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointer(v int) *int {
	return &v
}

// a 200x200 view: clock radius 100, track radius 78
func newController(t *testing.T, options slider.Options) *slider.Controller {
	t.Helper()

	options.Width = 200
	options.Height = 200
	options.RingWidth = 44

	if options.Clock == nil {
		options.Clock = clock.Fixed{At: time.Date(2024, time.October, 23, 15, 0, 0, 0, time.UTC)}
	}

	controller, err := slider.NewController(slog.New(slog.DiscardHandler), options)
	require.NoError(t, err)

	return controller
}

func thumb(c *slider.Controller, minutes float64) geometry.Point {
	return c.Track().ThumbCenterPoint(minutes, c.Slice().ClockType().OneRotation())
}

func TestNewControllerRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name     string
		options  slider.Options
		expected error
	}{
		{"three hands", slider.Options{Width: 200, Height: 200, RingWidth: 44, Hands: 3}, slider.ErrInvalidHands},
		{"negative increment", slider.Options{Width: 200, Height: 200, RingWidth: 44, IncrementMinutes: -5}, slider.ErrInvalidIncrement},
		{"unknown clock", slider.Options{Width: 200, Height: 200, RingWidth: 44, ClockType: 10}, clock.ErrUnknownType},
		{"empty frame", slider.Options{RingWidth: 44}, geometry.ErrInvalidRadius},
		{"ring wider than clock", slider.Options{Width: 200, Height: 200, RingWidth: 250}, geometry.ErrInvalidRingWidth},
		{"zero max duration", slider.Options{Width: 200, Height: 200, RingWidth: 44, MaxDurationMinutes: pointer(0)}, timeslice.ErrInvalidMaxDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := slider.NewController(slog.New(slog.DiscardHandler), tt.options)
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestDragFinishUpdatesTime(t *testing.T) {
	c := newController(t, slider.Options{
		Start:  timeofday.New(0, 0),
		Finish: timeofday.New(3, 0),
	})

	require.Equal(t, slider.Finish, c.BeginDrag(geometry.Point{X: 178, Y: 100}))
	require.True(t, c.ContinueDrag(geometry.Point{X: 150, Y: 75}))

	snapshot := c.Snapshot()
	assert.Equal(t, timeofday.New(2, 7), snapshot.Finish)
	assert.Equal(t, timeofday.New(0, 0), snapshot.Start)
	assert.Equal(t, slider.Finish, snapshot.Active)
	assert.InDelta(t, 1.1071487, snapshot.FinishAngle, 0.0001)
	assert.Equal(t, 127, snapshot.TimeRange)

	assert.Equal(t, slider.Finish, c.EndDrag(geometry.Point{X: 150, Y: 75}))

	snapshot = c.Snapshot()
	assert.Equal(t, timeofday.New(2, 5), snapshot.Finish)
	assert.Equal(t, slider.None, snapshot.Active)
	assert.InDelta(t, 125.0/720*2*math.Pi, snapshot.FinishAngle, 0.0001)
}

func TestDragStartHandleToScreenPoint(t *testing.T) {
	c := newController(t, slider.Options{
		Start:  timeofday.New(0, 0),
		Finish: timeofday.New(3, 0),
	})

	require.Equal(t, slider.Start, c.BeginDrag(geometry.Point{X: 100, Y: 22}))
	require.True(t, c.ContinueDrag(geometry.Point{X: 150, Y: 75}))

	assert.Equal(t, timeofday.New(2, 7), c.Slice().Start())
	assert.Equal(t, timeofday.New(3, 0), c.Slice().Finish())
	assert.Equal(t, 53, c.Slice().TimeRange())
}

func TestDragStartKeepsHalfOfDay(t *testing.T) {
	c := newController(t, slider.Options{
		Start:  timeofday.New(5, 59),
		Finish: timeofday.New(9, 0),
	})

	require.Equal(t, slider.Start, c.BeginDrag(thumb(c, 359)))
	require.True(t, c.ContinueDrag(geometry.Point{X: 145, Y: 200}))
	assert.Equal(t, timeofday.New(5, 12), c.Slice().Start())

	c.EndDrag(geometry.Point{X: 145, Y: 200})
	assert.Equal(t, timeofday.New(5, 10), c.Slice().Start())
	assert.Equal(t, timeofday.AM, c.Snapshot().StartPeriod)
}

func TestIgnoredSamplesLeaveSliceUntouched(t *testing.T) {
	c := newController(t, slider.Options{
		Start:  timeofday.New(0, 0),
		Finish: timeofday.New(3, 0),
	})

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 180)))

	for _, p := range []geometry.Point{
		{X: 100, Y: 100},
		{X: 101, Y: 101},
		{X: 110, Y: 90},
	} {
		assert.False(t, c.ContinueDrag(p), p.String())
		assert.Equal(t, timeofday.New(3, 0), c.Slice().Finish())
	}
}

func TestContinueWithoutActiveHandle(t *testing.T) {
	c := newController(t, slider.Options{Finish: timeofday.New(3, 0)})

	assert.Equal(t, slider.None, c.BeginDrag(geometry.Point{X: 100, Y: 100}))
	assert.False(t, c.ContinueDrag(geometry.Point{X: 150, Y: 75}))
	assert.Equal(t, slider.None, c.EndDrag(geometry.Point{X: 150, Y: 75}))
	assert.Equal(t, timeofday.New(3, 0), c.Slice().Finish())
}

func TestOverlappingHandlesPreferLastDragged(t *testing.T) {
	startHit, finishHit := true, true

	c := newController(t, slider.Options{
		Finish: timeofday.New(3, 0),
		StartHandle: slider.HitTesterFunc(func(geometry.Point) bool {
			return startHit
		}),
		FinishHandle: slider.HitTesterFunc(func(geometry.Point) bool {
			return finishHit
		}),
	})

	anywhere := geometry.Point{X: 100, Y: 22}

	assert.Equal(t, slider.Start, c.BeginDrag(anywhere))
	c.EndDrag(anywhere)

	startHit = false
	assert.Equal(t, slider.Finish, c.BeginDrag(anywhere))
	c.ContinueDrag(thumb(c, 200))
	c.EndDrag(thumb(c, 200))

	startHit = true
	assert.Equal(t, slider.Finish, c.BeginDrag(anywhere))
	c.EndDrag(anywhere)

	finishHit = false
	assert.Equal(t, slider.Start, c.BeginDrag(anywhere))
	c.ContinueDrag(thumb(c, 60))
	c.EndDrag(thumb(c, 60))

	finishHit = true
	assert.Equal(t, slider.Start, c.BeginDrag(anywhere))
	c.EndDrag(anywhere)
}

func TestLockedStartIsNeverSelected(t *testing.T) {
	c := newController(t, slider.Options{
		Hands:  1,
		Start:  timeofday.New(4, 0),
		Finish: timeofday.New(3, 0),
		StartHandle: slider.HitTesterFunc(func(geometry.Point) bool {
			return true
		}),
		FinishHandle: slider.HitTesterFunc(func(geometry.Point) bool {
			return false
		}),
	})

	assert.True(t, c.Snapshot().StartLocked)
	assert.Equal(t, timeofday.New(0, 0), c.Slice().Start())
	assert.Equal(t, slider.None, c.BeginDrag(geometry.Point{X: 100, Y: 22}))
}

func TestSingleHandDragsFinishFromMidnight(t *testing.T) {
	c := newController(t, slider.Options{
		Hands:  1,
		Finish: timeofday.New(0, 0),
	})

	// both thumbs sit at 12 o'clock
	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 0)))
	require.True(t, c.ContinueDrag(thumb(c, 90)))
	c.EndDrag(thumb(c, 90))

	assert.Equal(t, timeofday.New(0, 0), c.Slice().Start())
	assert.Equal(t, timeofday.New(1, 30), c.Slice().Finish())
}

func TestDragAcrossTwelveChangesRotation(t *testing.T) {
	c := newController(t, slider.Options{
		Start:  timeofday.New(0, 0),
		Finish: timeofday.New(11, 0),
	})

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 660)))

	require.True(t, c.ContinueDrag(thumb(c, 10)))
	assert.Equal(t, timeofday.New(12, 10), c.Slice().Finish())
	assert.Equal(t, rotation.Second, c.Slice().RotationCount())
	assert.Equal(t, 730, c.Slice().TimeRange())

	require.True(t, c.ContinueDrag(thumb(c, 660)))
	assert.Equal(t, timeofday.New(11, 0), c.Slice().Finish())
	assert.Equal(t, rotation.First, c.Slice().RotationCount())
	assert.Equal(t, 660, c.Slice().TimeRange())
}

func TestRotationSuppressedByShortMaxDuration(t *testing.T) {
	c := newController(t, slider.Options{
		Start:              timeofday.New(0, 0),
		Finish:             timeofday.New(11, 0),
		MaxDurationMinutes: pointer(700),
	})

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 660)))
	require.True(t, c.ContinueDrag(thumb(c, 10)))
	assert.Equal(t, rotation.First, c.Slice().RotationCount())
	assert.Equal(t, 10, c.Slice().TimeRange())
}

func TestEndDragClampsFinishToMaxDuration(t *testing.T) {
	c := newController(t, slider.Options{
		Start:              timeofday.New(0, 0),
		Finish:             timeofday.New(2, 0),
		MaxDurationMinutes: pointer(180),
	})

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 120)))
	require.True(t, c.ContinueDrag(thumb(c, 300)))
	assert.Equal(t, 300, c.Slice().TimeRange())

	c.EndDrag(thumb(c, 300))

	assert.Equal(t, timeofday.New(3, 0), c.Slice().Finish())
	assert.Equal(t, 180, c.Slice().TimeRange())
	assert.Equal(t, rotation.First, c.Slice().RotationCount())
}

func TestEndDragClampsStartToMaxDuration(t *testing.T) {
	c := newController(t, slider.Options{
		Start:              timeofday.New(4, 0),
		Finish:             timeofday.New(6, 0),
		MaxDurationMinutes: pointer(180),
	})

	require.Equal(t, slider.Start, c.BeginDrag(thumb(c, 240)))
	require.True(t, c.ContinueDrag(thumb(c, 60)))
	assert.Equal(t, 300, c.Slice().TimeRange())

	c.EndDrag(thumb(c, 60))

	assert.Equal(t, timeofday.New(3, 0), c.Slice().Start())
	assert.Equal(t, 180, c.Slice().TimeRange())
}

func TestEndDragClampsOnSecondLap(t *testing.T) {
	c := newController(t, slider.Options{
		Start:              timeofday.New(0, 0),
		Finish:             timeofday.New(11, 0),
		MaxDurationMinutes: pointer(800),
	})

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 660)))
	require.True(t, c.ContinueDrag(thumb(c, 10)))
	require.True(t, c.ContinueDrag(thumb(c, 120)))
	assert.Equal(t, timeofday.New(14, 0), c.Slice().Finish())
	assert.Equal(t, 840, c.Slice().TimeRange())

	c.EndDrag(thumb(c, 120))

	assert.Equal(t, timeofday.New(13, 20), c.Slice().Finish())
	assert.Equal(t, rotation.Second, c.Slice().RotationCount())
	assert.Equal(t, 800, c.Slice().TimeRange())
}

func TestSnapStepsBackWithinMaxDuration(t *testing.T) {
	c := newController(t, slider.Options{
		Start:              timeofday.New(0, 0),
		Finish:             timeofday.New(1, 0),
		MaxDurationMinutes: pointer(184),
	})

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 60)))
	require.True(t, c.ContinueDrag(thumb(c, 184)))
	assert.Equal(t, 184, c.Slice().TimeRange())

	c.EndDrag(thumb(c, 184))

	assert.Equal(t, timeofday.New(3, 0), c.Slice().Finish())
	assert.LessOrEqual(t, c.Slice().TimeRange(), 184)
}

func TestSnapDoesNotCollapseSecondLap(t *testing.T) {
	tests := []struct {
		name           string
		clockType      clock.Type
		finish         timeofday.TimeOfDay
		expectedFinish timeofday.TimeOfDay
		expectedRange  int
	}{
		{"12 hour", clock.TwelveHour, timeofday.New(11, 0), timeofday.New(23, 55), 1435},
		{"24 hour", clock.TwentyFourHour, timeofday.New(22, 0), timeofday.New(23, 55), 2875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t, slider.Options{
				ClockType: tt.clockType,
				Start:     timeofday.New(0, 0),
				Finish:    tt.finish,
			})

			one := tt.clockType.OneRotation()
			from := tt.finish.TotalMinutes() % one

			require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, float64(from))))

			// around past twelve and on to two minutes short of a second lap
			for m := from + 1; m < one; m++ {
				c.ContinueDrag(thumb(c, float64(m%one)))
			}
			for m := 0; m <= one-2; m++ {
				c.ContinueDrag(thumb(c, float64(m)))
			}

			require.Equal(t, rotation.Second, c.Slice().RotationCount())
			require.Equal(t, 2*one-2, c.Slice().TimeRange())

			c.EndDrag(thumb(c, float64(one-2)))

			assert.Equal(t, tt.expectedFinish, c.Slice().Finish())
			assert.Equal(t, rotation.Second, c.Slice().RotationCount())
			assert.Equal(t, tt.expectedRange, c.Slice().TimeRange())
		})
	}
}

func TestSnapDoesNotCollapseSecondLapWhenDraggingStart(t *testing.T) {
	c := newController(t, slider.Options{
		Start:  timeofday.New(1, 0),
		Finish: timeofday.New(0, 0),
	})
	require.Equal(t, rotation.Second, c.Slice().RotationCount())

	require.Equal(t, slider.Start, c.BeginDrag(thumb(c, 60)))

	for m := 59; m >= 2; m-- {
		c.ContinueDrag(thumb(c, float64(m)))
	}

	require.Equal(t, timeofday.New(0, 2), c.Slice().Start())
	require.Equal(t, 1438, c.Slice().TimeRange())

	c.EndDrag(thumb(c, 2))

	assert.Equal(t, timeofday.New(0, 5), c.Slice().Start())
	assert.Equal(t, rotation.Second, c.Slice().RotationCount())
	assert.Equal(t, 1435, c.Slice().TimeRange())
}

func TestSnapUsesIncrement(t *testing.T) {
	tests := []struct {
		increment int
		minutes   float64
		expected  timeofday.TimeOfDay
	}{
		{5, 127, timeofday.New(2, 5)},
		{5, 128, timeofday.New(2, 10)},
		{15, 127, timeofday.New(2, 0)},
		{15, 128, timeofday.New(2, 15)},
		{1, 127, timeofday.New(2, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			c := newController(t, slider.Options{
				Finish:           timeofday.New(3, 0),
				IncrementMinutes: tt.increment,
			})

			require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 180)))
			require.True(t, c.ContinueDrag(thumb(c, tt.minutes)))
			c.EndDrag(thumb(c, tt.minutes))

			assert.Equal(t, tt.expected, c.Slice().Finish())
		})
	}
}

func TestEndDragIsIdempotent(t *testing.T) {
	c := newController(t, slider.Options{Finish: timeofday.New(3, 0)})

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 180)))
	require.True(t, c.ContinueDrag(thumb(c, 127)))

	assert.Equal(t, slider.Finish, c.EndDrag(thumb(c, 127)))
	first := c.Snapshot()

	assert.Equal(t, slider.None, c.EndDrag(thumb(c, 127)))
	assert.Equal(t, first, c.Snapshot())
}

func TestAbortDragRestoresSlice(t *testing.T) {
	c := newController(t, slider.Options{
		Start:  timeofday.New(0, 0),
		Finish: timeofday.New(11, 0),
	})

	before := c.Snapshot()

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 660)))
	require.True(t, c.ContinueDrag(thumb(c, 10)))
	require.Equal(t, rotation.Second, c.Slice().RotationCount())

	c.AbortDrag()

	after := c.Snapshot()
	assert.NotEqual(t, uuid.Nil, after.DragID)

	after.DragID = uuid.Nil
	assert.Equal(t, before, after)
	assert.Equal(t, slider.None, c.Active())
}

func TestSnapshotCarriesDragID(t *testing.T) {
	c := newController(t, slider.Options{
		Start:  timeofday.New(0, 0),
		Finish: timeofday.New(3, 0),
	})
	assert.Equal(t, uuid.Nil, c.Snapshot().DragID)

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 180)))
	first := c.Snapshot().DragID
	assert.NotEqual(t, uuid.Nil, first)

	c.EndDrag(thumb(c, 180))
	assert.Equal(t, first, c.Snapshot().DragID)

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 180)))
	assert.NotEqual(t, first, c.Snapshot().DragID)
}

func TestTwentyFourHourFace(t *testing.T) {
	c := newController(t, slider.Options{
		ClockType: clock.TwentyFourHour,
		Start:     timeofday.New(6, 0),
		Finish:    timeofday.New(12, 0),
	})

	require.Equal(t, slider.Finish, c.BeginDrag(thumb(c, 720)))
	require.True(t, c.ContinueDrag(thumb(c, 1080)))
	c.EndDrag(thumb(c, 1080))

	snapshot := c.Snapshot()
	assert.Equal(t, timeofday.New(18, 0), snapshot.Finish)
	assert.Equal(t, timeofday.PM, snapshot.FinishPeriod)
	assert.Equal(t, 720, snapshot.TimeRange)
	assert.InDelta(t, 3*math.Pi/2, snapshot.FinishAngle, 0.0001)
}

func TestSnapshotReportsCurrentTime(t *testing.T) {
	c := newController(t, slider.Options{Finish: timeofday.New(3, 0)})

	snapshot := c.Snapshot()
	assert.Equal(t, timeofday.New(15, 0), snapshot.Now)
	assert.InDelta(t, math.Pi/2, snapshot.NowAngle, 0.0001)
	assert.Equal(t, clock.TwelveHour, snapshot.ClockType)
}

func TestDurationHelpers(t *testing.T) {
	c := newController(t, slider.Options{Start: timeofday.New(8, 0)})

	c.SetInitialDuration(90)
	assert.Equal(t, timeofday.New(9, 30), c.Slice().Finish())

	c.IncrementDuration(30)
	assert.Equal(t, timeofday.New(10, 0), c.Slice().Finish())

	c.SetPeriods(timeofday.PM, timeofday.PM)
	assert.Equal(t, timeofday.New(20, 0), c.Slice().Start())
	assert.Equal(t, timeofday.New(22, 0), c.Slice().Finish())
}
