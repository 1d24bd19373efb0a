// Package timeslice models the span of time selected between a start and a
// finish hand on a clock face.
//
// A 12-hour face shows the same position for 03:00 and 15:00, so turning a
// hand position back into a time of day needs the previous time of the
// hand. The slice also remembers whether the finish hand went once or twice
// around the face.
package timeslice

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lucax88x/clockslider/internal/clock"
	"github.com/lucax88x/clockslider/internal/rotation"
	"github.com/lucax88x/clockslider/internal/timeofday"
)

var (
	ErrInvalidMaxDuration   = errors.New("timeslice: max duration must be positive")
	ErrInvalidRotationCount = errors.New("timeslice: unknown rotation count")
)

type Params struct {
	ClockType     clock.Type
	Start         timeofday.TimeOfDay
	Finish        timeofday.TimeOfDay
	RotationCount rotation.Count
	// nil means the slice may grow up to two full rotations
	MaxDurationMinutes    *int
	StartLockedToMidnight bool
}

type TimeSlice struct {
	clockType     clock.Type
	start         timeofday.TimeOfDay
	finish        timeofday.TimeOfDay
	rotationCount rotation.Count
	maxDuration   *int
	startLocked   bool
}

func New(params Params) (*TimeSlice, error) {
	if !params.ClockType.Valid() {
		return nil, fmt.Errorf("timeslice: %w: %d", clock.ErrUnknownType, int(params.ClockType))
	}

	if params.RotationCount != rotation.First && params.RotationCount != rotation.Second {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRotationCount, int(params.RotationCount))
	}

	var maxDuration *int

	if params.MaxDurationMinutes != nil {
		if *params.MaxDurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxDuration, *params.MaxDurationMinutes)
		}

		value := *params.MaxDurationMinutes
		maxDuration = &value
	}

	start := params.Start
	if params.StartLockedToMidnight {
		start = timeofday.TimeOfDay{}
	}

	return &TimeSlice{
		clockType:     params.ClockType,
		start:         start,
		finish:        params.Finish,
		rotationCount: params.RotationCount,
		maxDuration:   maxDuration,
		startLocked:   params.StartLockedToMidnight,
	}, nil
}

// Clone returns an independent copy; the max duration is never mutated so
// it can be shared.
func (s *TimeSlice) Clone() *TimeSlice {
	clone := *s
	return &clone
}

func (s *TimeSlice) ClockType() clock.Type {
	return s.clockType
}

func (s *TimeSlice) Start() timeofday.TimeOfDay {
	return s.start
}

func (s *TimeSlice) Finish() timeofday.TimeOfDay {
	return s.finish
}

// SetStart is ignored while the start is locked to midnight.
func (s *TimeSlice) SetStart(t timeofday.TimeOfDay) {
	if s.startLocked {
		return
	}
	s.start = t
}

func (s *TimeSlice) SetFinish(t timeofday.TimeOfDay) {
	s.finish = t
}

func (s *TimeSlice) RotationCount() rotation.Count {
	return s.rotationCount
}

func (s *TimeSlice) SetRotationCount(c rotation.Count) {
	s.rotationCount = c
}

func (s *TimeSlice) MaxDurationMinutes() (int, bool) {
	if s.maxDuration == nil {
		return 0, false
	}
	return *s.maxDuration, true
}

func (s *TimeSlice) StartLockedToMidnight() bool {
	return s.startLocked
}

// MaxAllowedMinutes is the longest TimeRange a released drag may leave
// behind.
func (s *TimeSlice) MaxAllowedMinutes() int {
	if s.maxDuration != nil {
		return *s.maxDuration
	}
	return 2 * s.clockType.OneRotation()
}

func (s *TimeSlice) StartPeriod() timeofday.Period {
	return s.start.Period()
}

func (s *TimeSlice) FinishPeriod() timeofday.Period {
	return s.finish.Period()
}

// ChangeTimeOfDayUsingClockFaceTime turns a hand position read off the face
// into a time of day. On a 12-hour face the result stays on whichever half
// of the day is closest to old.
func (s *TimeSlice) ChangeTimeOfDayUsingClockFaceTime(old timeofday.TimeOfDay, faceMinutes float64) timeofday.TimeOfDay {
	if s.clockType == clock.TwentyFourHour {
		return timeofday.FromTotalMinutes(int(math.Round(faceMinutes)))
	}

	safeMinutes := ConvertMinutesToSafeMinutes(faceMinutes, s.clockType)

	adjusted := old
	adjusted.AdjustMinutesSlightly(safeMinutes)

	return adjusted
}

func (s *TimeSlice) ChangeStartTimeOfDayUsingClockFaceTime(faceMinutes float64) {
	if s.startLocked {
		return
	}
	s.start = s.ChangeTimeOfDayUsingClockFaceTime(s.start, faceMinutes)
}

func (s *TimeSlice) ChangeFinishTimeOfDayUsingClockFaceTime(faceMinutes float64) {
	s.finish = s.ChangeTimeOfDayUsingClockFaceTime(s.finish, faceMinutes)
}

// TimeRange is the selected duration in minutes. The wall-clock span
// between the hands is lifted by one rotation on the second lap.
func (s *TimeSlice) TimeRange() int {
	one := s.clockType.OneRotation()
	span := TimeSpanBetween(s.start, s.finish)

	switch s.rotationCount {
	case rotation.Second:
		if span < one {
			span += one
		}
	default:
		if span > one {
			span -= one
		}
	}

	return span
}

// Arc is the face span swept clockwise from the start hand to the finish
// hand, in [0, one rotation).
func (s *TimeSlice) Arc() int {
	one := s.clockType.OneRotation()
	arc := (s.finish.TotalMinutes() - s.start.TotalMinutes()) % one

	if arc < 0 {
		arc += one
	}

	return arc
}

// SetStartPeriod moves the start hand to the other half of the day when it
// is not already in p. It has no effect on a 24-hour face or on a start
// locked to midnight.
func (s *TimeSlice) SetStartPeriod(p timeofday.Period) {
	if s.clockType != clock.TwelveHour || s.startLocked || s.start.Period() == p {
		return
	}
	s.start.SetHours(s.start.Hour() + 12)
}

func (s *TimeSlice) SetFinishPeriod(p timeofday.Period) {
	if s.clockType != clock.TwelveHour || s.finish.Period() == p {
		return
	}
	s.finish.SetHours(s.finish.Hour() + 12)
}

// AdvanceRotationCountIfAllowed never moves to the second lap when the
// max duration fits within one rotation.
func (s *TimeSlice) AdvanceRotationCountIfAllowed() {
	if s.maxDuration == nil || *s.maxDuration > s.clockType.OneRotation() {
		s.rotationCount.Increment()
	}
}

func (s *TimeSlice) DecrementRotationCount() {
	s.rotationCount.Decrement()
}

func (s *TimeSlice) ChangeRotationCountIfNeeded(oldArc, newArc int) {
	switch rotation.Detect(oldArc, newArc, s.clockType) {
	case rotation.Advance:
		s.AdvanceRotationCountIfAllowed()
	case rotation.Retreat:
		s.DecrementRotationCount()
	case rotation.None:
	}
}

// SetInitialDuration places the finish hand minutes after the start hand.
func (s *TimeSlice) SetInitialDuration(minutes int) {
	s.setDuration(minutes)
}

// IncrementDuration grows (or, with a negative value, shrinks) the current
// TimeRange by minutes, moving only the finish hand.
func (s *TimeSlice) IncrementDuration(minutes int) {
	s.setDuration(s.TimeRange() + minutes)
}

func (s *TimeSlice) setDuration(minutes int) {
	one := s.clockType.OneRotation()

	// the second lap ends one minute short of two rotations
	upper := min(s.MaxAllowedMinutes(), 2*one-1)
	minutes = max(0, min(minutes, upper))

	s.finish = s.start.Add(time.Duration(minutes) * time.Minute)
	s.rotationCount = rotation.First

	if minutes >= one {
		s.AdvanceRotationCountIfAllowed()
	}
}

// ConvertMinutesToSafeMinutes rounds raw face minutes and wraps them into
// [0, one rotation).
func ConvertMinutesToSafeMinutes(raw float64, clockType clock.Type) int {
	one := clockType.OneRotation()
	safe := int(math.Round(raw)) % one

	if safe < 0 {
		safe += one
	}

	return safe
}

// TimeSpanBetween is the number of minutes from start forward to finish,
// crossing midnight when finish is earlier in the day.
func TimeSpanBetween(start, finish timeofday.TimeOfDay) int {
	span := int(finish.Sub(start).Minutes())

	if span < 0 {
		span += timeofday.MinutesPerDay
	}

	return span
}
