// Package geometry converts between host-view screen points, points on
// the slider track, clock-face angles and clock-face minutes.
//
// Screen space has its origin at the top-left corner of the view with Y
// growing downwards. Track space is cartesian with the origin at the
// centre of the clock and Y growing upwards. Angles are radians measured
// clockwise from 12 o'clock.
package geometry

import (
	"fmt"
	"math"

	"github.com/lucax88x/clockslider/internal/clock"
)

const fullTurn = 2 * math.Pi

type Point struct {
	X float64
	Y float64
}

func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

type Quadrant int

const (
	First Quadrant = iota
	Second
	Third
	Fourth
)

func (q Quadrant) String() string {
	switch q {
	case First:
		return "first"
	case Second:
		return "second"
	case Third:
		return "third"
	case Fourth:
		return "fourth"
	default:
		return "unknown"
	}
}

// PointToQuadrant classifies a track-space point. A point on the negative
// X axis is fourth, not third.
func PointToQuadrant(p Point) Quadrant {
	if p.X >= 0 {
		if p.Y >= 0 {
			return First
		}
		return Second
	}

	if p.Y >= 0 {
		return Fourth
	}

	return Third
}

// MinutesToQuadrant tells which quarter of the face an hour hand sitting
// on the given minutes points into.
func MinutesToQuadrant(minutes int, clockType clock.Type) Quadrant {
	one := clockType.OneRotation()
	onFace := ((minutes % one) + one) % one

	switch {
	case onFace < clockType.QuarterRotation():
		return First
	case onFace < clockType.HalfRotation():
		return Second
	case onFace < clockType.ThreeQuarterRotation():
		return Third
	default:
		return Fourth
	}
}

// ClosestPointOnCircle returns the point of the circle of the given radius,
// centred on the origin, that lies on the ray from the origin through p.
// It reports false when p is within tolerance of the centre, where the
// direction of the ray is meaningless.
func ClosestPointOnCircle(p Point, tolerance, radius float64) (Point, bool) {
	distance := math.Hypot(p.X, p.Y)

	if distance < tolerance || distance == 0 {
		return Point{}, false
	}

	scale := radius / distance

	return Point{X: p.X * scale, Y: p.Y * scale}, true
}

// PointToAngle returns the clockwise angle from 12 o'clock of a point on
// the circle of the given radius. NaN means the point's X lies outside the
// circle and no angle exists; callers treat it as "no change".
func PointToAngle(p Point, radius float64) float64 {
	switch PointToQuadrant(p) {
	case First:
		return arcSine(p.X, radius)
	case Second:
		return math.Pi - arcSine(p.X, radius)
	case Third:
		return math.Pi + arcSine(-p.X, radius)
	default:
		return fullTurn - arcSine(-p.X, radius)
	}
}

// arcSine tolerates sub-pixel overshoot of the radius by retrying with a
// rounded X.
func arcSine(x, radius float64) float64 {
	angle := math.Asin(x / radius)

	if math.IsNaN(angle) {
		angle = math.Asin(math.Round(x) / radius)
	}

	return angle
}

// AngleToMinutes keeps fractional minutes; whole minutes are decided by
// whoever stores the value.
func AngleToMinutes(angle float64, ticksPerRevolution int) float64 {
	ticks := float64(ticksPerRevolution)
	return math.Mod(angle/fullTurn*ticks, ticks)
}

func MinutesToAngle(minutes float64, ticksPerRevolution int) float64 {
	ticks := float64(ticksPerRevolution)
	onFace := math.Mod(minutes, ticks)

	if onFace < 0 {
		onFace += ticks
	}

	return onFace / ticks * fullTurn
}
