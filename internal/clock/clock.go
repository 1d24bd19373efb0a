package clock

import "time"

type Clock interface {
	Now() time.Time
}

const HoursMinutes = "3:04 PM"
const HoursMinutes24 = "15:04"
const Time = "03:04:05 PM"

type SystemClock struct{}

func NewSystemClock() Clock {
	return &SystemClock{}
}

func (r *SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant. Useful for hosts that render a
// frozen face and for tests.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
