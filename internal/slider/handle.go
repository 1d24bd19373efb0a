package slider

import (
	"github.com/lucax88x/clockslider/internal/geometry"
)

type Handle int

const (
	None Handle = iota
	Start
	Finish
)

func (h Handle) String() string {
	switch h {
	case Start:
		return "start"
	case Finish:
		return "finish"
	default:
		return "none"
	}
}

// HitTester decides whether a screen point grabs a handle. Hosts with
// custom thumb shapes plug in their own.
type HitTester interface {
	PointInsideHandle(p geometry.Point) bool
}

type HitTesterFunc func(p geometry.Point) bool

func (f HitTesterFunc) PointInsideHandle(p geometry.Point) bool {
	return f(p)
}

// circleHitTester grabs points within radius of the thumb centre reported
// by center at the time of the test.
func circleHitTester(center func() geometry.Point, radius float64) HitTester {
	return HitTesterFunc(func(p geometry.Point) bool {
		return p.DistanceTo(center()) <= radius
	})
}
