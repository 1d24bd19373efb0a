// Package rotation keeps track of how many times a hand has been dragged
// around the face. A drag that passes its own starting point goes from the
// first to the second lap; there is no third lap.
package rotation

import (
	"github.com/lucax88x/clockslider/internal/clock"
)

type Count int

const (
	First Count = iota
	Second
)

func (c Count) String() string {
	if c == Second {
		return "second"
	}
	return "first"
}

func (c *Count) Increment() {
	if *c == First {
		*c = Second
	}
}

func (c *Count) Decrement() {
	if *c == Second {
		*c = First
	}
}

type Transition int

const (
	None Transition = iota
	Advance
	Retreat
)

func (t Transition) String() string {
	switch t {
	case Advance:
		return "advance"
	case Retreat:
		return "retreat"
	default:
		return "none"
	}
}

// Detect compares the arc between the hands before and after one drag
// sample. Only a jump between the "almost complete" band and the "just
// started" band counts as crossing twelve; anything in between is a plain
// move.
func Detect(oldRange, newRange int, clockType clock.Type) Transition {
	oneRotation := clockType.OneRotation()
	almostFull := clockType.AlmostFullRotation()

	almostComplete := func(r int) bool {
		return r > almostFull && r < oneRotation
	}

	justStarted := func(r int) bool {
		return r >= 0 && r <= clock.JustStartedMinutes
	}

	switch {
	case almostComplete(oldRange) && justStarted(newRange):
		return Advance
	case almostComplete(newRange) && justStarted(oldRange):
		return Retreat
	default:
		return None
	}
}
