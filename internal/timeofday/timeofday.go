// Package timeofday holds a date-less hour/minute value that is always
// normalized into a single day.
package timeofday

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lucax88x/clockslider/internal/clock"
)

const (
	minutesPerHour = 60
	hoursPerDay    = 24
	MinutesPerDay  = minutesPerHour * hoursPerDay
	minutesHalfDay = MinutesPerDay / 2

	// largest change expected between two samples of one drag
	expectedMaxChangeInMinutes = 120
)

type Period int

const (
	AM Period = iota
	PM
)

func (p Period) String() string {
	if p == PM {
		return "PM"
	}
	return "AM"
}

func (p Period) Toggle() Period {
	if p == AM {
		return PM
	}
	return AM
}

var ErrUnknownPeriod = errors.New("timeofday: unknown period")

func ParsePeriod(s string) (Period, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AM":
		return AM, nil
	case "PM":
		return PM, nil
	default:
		return AM, fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

// TimeOfDay is comparable with ==; two values are equal when their
// normalized hour and minute match.
type TimeOfDay struct {
	hour   int
	minute int
}

func New(hour, minute int) TimeOfDay {
	var t TimeOfDay
	t.SetHours(hour)
	t.SetMinutes(minute)
	return t
}

func FromTotalMinutes(minutes int) TimeOfDay {
	return New(0, minutes)
}

func FromHours(hours int) TimeOfDay {
	return New(hours, 0)
}

func FromTime(t time.Time) TimeOfDay {
	return New(t.Hour(), t.Minute())
}

func Now(c clock.Clock) TimeOfDay {
	return FromTime(c.Now())
}

// Parse reads "15:04" values.
func Parse(s string) (TimeOfDay, error) {
	parsed, err := time.Parse(clock.HoursMinutes24, s)

	if err != nil {
		return TimeOfDay{}, fmt.Errorf("timeofday: could not parse %q: %w", s, err)
	}

	return FromTime(parsed), nil
}

func (t TimeOfDay) Hour() int {
	return t.hour
}

func (t TimeOfDay) Minute() int {
	return t.minute
}

func (t TimeOfDay) TotalMinutes() int {
	return t.hour*minutesPerHour + t.minute
}

func (t TimeOfDay) Period() Period {
	if t.hour >= 12 {
		return PM
	}
	return AM
}

// SetHours wraps any integer into [0,24); negative values land on the prior day.
func (t *TimeOfDay) SetHours(hours int) {
	t.hour = floorMod(hours, hoursPerDay)
}

// SetMinutes replaces the minute and carries whole hours of overflow or
// underflow into the hour.
func (t *TimeOfDay) SetMinutes(minutes int) {
	t.minute = floorMod(minutes, minutesPerHour)
	t.SetHours(t.hour + floorDiv(minutes, minutesPerHour))
}

// Add returns t moved by d, rounded to the nearest minute.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	minutes := int(math.Round(d.Minutes()))
	return FromTotalMinutes(t.TotalMinutes() + minutes)
}

// Sub is the signed distance t-other on the same day.
func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(t.TotalMinutes()-other.TotalMinutes()) * time.Minute
}

// AdjustMinutesSlightly moves t to newTotalMinutes, or to the half-day
// sibling of newTotalMinutes closest to t. A 12-hour face only yields
// minutes in [0,720), so 3:01 read off the face must stay 15:01 when the
// hand was at 15:00.
func (t *TimeOfDay) AdjustMinutesSlightly(newTotalMinutes int) {
	difference := t.TotalMinutes() - newTotalMinutes
	threshold := minutesHalfDay - expectedMaxChangeInMinutes

	if abs(difference) <= threshold {
		*t = FromTotalMinutes(newTotalMinutes)
		return
	}

	halfDays := int(math.Round(float64(difference) / float64(minutesHalfDay)))
	*t = FromTotalMinutes(newTotalMinutes + halfDays*minutesHalfDay)
}

// Date places t on the given day in loc.
func (t TimeOfDay) Date(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, t.hour, t.minute, 0, 0, loc)
}

func (t TimeOfDay) Format(layout string) string {
	return t.Date(0, time.January, 1, time.UTC).Format(layout)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
