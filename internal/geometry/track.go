package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidRadius    = errors.New("geometry: clock radius must be positive")
	ErrInvalidRingWidth = errors.New("geometry: ring width must be positive and narrower than the clock")
	ErrInvalidTolerance = errors.New("geometry: drag tolerance must not be negative")
)

// Track is the ring the handle thumbs slide along. Its centre line sits
// half a ring width inside the clock radius because strokes are drawn
// half on each side of the line.
type Track struct {
	clockRadius   float64
	ringWidth     float64
	trackRadius   float64
	dragTolerance float64
}

func NewTrack(clockRadius, ringWidth, dragTolerance float64) (*Track, error) {
	if !(clockRadius > 0) || math.IsInf(clockRadius, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, clockRadius)
	}

	trackRadius := clockRadius - ringWidth/2

	if !(ringWidth > 0) || !(trackRadius > 0) {
		return nil, fmt.Errorf("%w: got %v for radius %v", ErrInvalidRingWidth, ringWidth, clockRadius)
	}

	if !(dragTolerance >= 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTolerance, dragTolerance)
	}

	return &Track{
		clockRadius:   clockRadius,
		ringWidth:     ringWidth,
		trackRadius:   trackRadius,
		dragTolerance: dragTolerance,
	}, nil
}

// TrackForFrame fits the clock into the smaller side of the view.
func TrackForFrame(width, height, ringWidth, dragTolerance float64) (*Track, error) {
	return NewTrack(math.Min(width, height)/2, ringWidth, dragTolerance)
}

func (t *Track) ClockRadius() float64 {
	return t.clockRadius
}

func (t *Track) RingWidth() float64 {
	return t.ringWidth
}

func (t *Track) TrackRadius() float64 {
	return t.trackRadius
}

func (t *Track) DragTolerance() float64 {
	return t.dragTolerance
}

func (t *Track) ScreenToTrackCenterPoint(screen Point) Point {
	return Point{X: screen.X - t.clockRadius, Y: t.clockRadius - screen.Y}
}

func (t *Track) TrackCenterToScreenPoint(p Point) Point {
	return Point{X: p.X + t.clockRadius, Y: t.clockRadius - p.Y}
}

// TouchToTrackPoint maps a touch onto the centre line of the track, in
// track space. It reports false for touches too close to the clock centre.
func (t *Track) TouchToTrackPoint(screen Point) (Point, bool) {
	return ClosestPointOnCircle(t.ScreenToTrackCenterPoint(screen), t.dragTolerance, t.trackRadius)
}

// TouchToMinutes runs the whole touch pipeline: screen point, track point,
// angle, raw face minutes. It reports false when the sample must be ignored.
func (t *Track) TouchToMinutes(screen Point, ticksPerRevolution int) (minutes float64, angle float64, ok bool) {
	p, ok := t.TouchToTrackPoint(screen)

	if !ok {
		return 0, 0, false
	}

	angle = PointToAngle(p, t.trackRadius)

	if math.IsNaN(angle) {
		return 0, 0, false
	}

	return AngleToMinutes(angle, ticksPerRevolution), angle, true
}

// ThumbCenterPoint is the screen point where the thumb of a hand resting
// on the given face minutes is drawn.
func (t *Track) ThumbCenterPoint(minutes float64, ticksPerRevolution int) Point {
	angle := MinutesToAngle(minutes, ticksPerRevolution)

	opposite := math.Sin(angle) * t.trackRadius
	adjacent := math.Cos(angle) * t.trackRadius

	return Point{X: opposite + t.clockRadius, Y: -adjacent + t.clockRadius}
}

// ArcEndMinutes walks spanMinutes along the track starting from the screen
// point from, and returns the face minutes where the walk ends.
func (t *Track) ArcEndMinutes(from Point, spanMinutes float64, ticksPerRevolution int, clockwise bool) float64 {
	start := t.ScreenToTrackCenterPoint(from)
	innerAngle := MinutesToAngle(spanMinutes, ticksPerRevolution)

	// atan2 measures counter-clockwise from 3 o'clock
	startAngle := math.Atan2(start.Y, start.X)

	endAngle := startAngle + innerAngle
	if clockwise {
		endAngle = startAngle - innerAngle
	}

	if endAngle < 0 {
		endAngle += fullTurn
	}

	end := Point{
		X: t.trackRadius * math.Cos(endAngle),
		Y: t.trackRadius * math.Sin(endAngle),
	}

	angle := PointToAngle(end, t.trackRadius)

	if math.IsNaN(angle) {
		return 0
	}

	return AngleToMinutes(angle, ticksPerRevolution)
}
