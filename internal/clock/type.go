package clock

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownType = errors.New("clock: unknown clock type")

// Type is the number of hours shown on one revolution of the face.
type Type int

const (
	TwelveHour     Type = 12
	TwentyFourHour Type = 24
)

// minutes covered by the "just started" band of the rotation rule
const JustStartedMinutes = 60

func (t Type) Valid() bool {
	return t == TwelveHour || t == TwentyFourHour
}

func (t Type) HoursPerFace() int {
	return int(t)
}

func (t Type) OneRotation() int {
	return 60 * int(t)
}

func (t Type) HalfRotation() int {
	return 30 * int(t)
}

func (t Type) QuarterRotation() int {
	return 15 * int(t)
}

func (t Type) ThreeQuarterRotation() int {
	return 45 * int(t)
}

// AlmostFullRotation is 8/9 of a revolution: 640 minutes on a 12-hour face.
func (t Type) AlmostFullRotation() int {
	return t.OneRotation() * 640 / 720
}

func (t Type) Layout() string {
	if t == TwentyFourHour {
		return HoursMinutes24
	}
	return HoursMinutes
}

func (t Type) String() string {
	switch t {
	case TwelveHour:
		return "12h"
	case TwentyFourHour:
		return "24h"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "12", "12h", "twelve":
		return TwelveHour, nil
	case "24", "24h", "twentyfour":
		return TwentyFourHour, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}
