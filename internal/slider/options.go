package slider

import (
	"errors"
	"fmt"

	"github.com/lucax88x/clockslider/internal/clock"
	"github.com/lucax88x/clockslider/internal/timeofday"
)

const (
	DefaultDragTolerance    = 30
	DefaultIncrementMinutes = 5
	DefaultHands            = 2
)

var (
	ErrInvalidHands     = errors.New("slider: a clock has one or two hands")
	ErrInvalidIncrement = errors.New("slider: increment must be positive")
	ErrInvalidFrame     = errors.New("slider: invalid frame")
)

type Options struct {
	ClockType clock.Type

	// view size in points; the clock is fitted into the smaller side
	Width     float64
	Height    float64
	RingWidth float64

	// touches closer than this to the centre are ignored, 0 selects the default
	DragTolerance float64

	Start  timeofday.TimeOfDay
	Finish timeofday.TimeOfDay

	MaxDurationMinutes *int

	// released handles snap to multiples of this, 0 selects the default
	IncrementMinutes int

	// 0 selects the default; a single hand always starts at midnight
	Hands                 int
	StartLockedToMidnight bool

	// nil selects a circle of half the ring width around the thumb
	StartHandle  HitTester
	FinishHandle HitTester

	// nil selects the system clock
	Clock clock.Clock
}

func (o Options) withDefaults() (Options, error) {
	if o.ClockType == 0 {
		o.ClockType = clock.TwelveHour
	}

	if !o.ClockType.Valid() {
		return o, fmt.Errorf("slider: %w: %d", clock.ErrUnknownType, int(o.ClockType))
	}

	if o.DragTolerance == 0 {
		o.DragTolerance = DefaultDragTolerance
	}

	if o.IncrementMinutes == 0 {
		o.IncrementMinutes = DefaultIncrementMinutes
	}

	if o.IncrementMinutes < 0 {
		return o, fmt.Errorf("%w: got %d", ErrInvalidIncrement, o.IncrementMinutes)
	}

	if o.Hands == 0 {
		o.Hands = DefaultHands
	}

	if o.Hands != 1 && o.Hands != 2 {
		return o, fmt.Errorf("%w: got %d", ErrInvalidHands, o.Hands)
	}

	if o.Hands == 1 {
		o.StartLockedToMidnight = true
	}

	if o.Clock == nil {
		o.Clock = clock.NewSystemClock()
	}

	return o, nil
}
