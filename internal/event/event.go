package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lucax88x/clockslider/internal/fifo"
	"github.com/lucax88x/clockslider/internal/geometry"
)

type Kind = string

const (
	Begin    Kind = "begin"
	Move     Kind = "move"
	End      Kind = "end"
	Abort    Kind = "abort"
	Snapshot Kind = "snapshot"
)

var ErrUnknownKind = errors.New("event: unknown event")

// In is one line on the pipe, e.g. {"event":"move","x":150,"y":75}.
type In struct {
	Event Kind    `json:"event"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

func (in In) Point() geometry.Point {
	return geometry.Point{X: in.X, Y: in.Y}
}

func FromLine(msg string) (*In, error) {
	line := strings.TrimSpace(msg)
	line = strings.TrimRight(line, string(fifo.Separator))

	var in *In
	err := json.Unmarshal([]byte(line), &in)

	if err != nil {
		return nil, fmt.Errorf("event: could not deserialize data: %w. Got: %s", err, line)
	}

	if in == nil {
		return nil, fmt.Errorf("event: deserialized data is nil. Got: %s", line)
	}

	switch in.Event {
	case Begin, Move, End, Abort, Snapshot:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, in.Event)
	}

	return in, nil
}

// Build serializes one event, terminated by the pipe separator.
func Build(kind Kind, p geometry.Point) (string, error) {
	bytes, err := json.Marshal(&In{Event: kind, X: p.X, Y: p.Y})

	if err != nil {
		return "", fmt.Errorf("event: could not serialize data. %w", err)
	}

	return fmt.Sprintf("%s%c", bytes, fifo.Separator), nil
}
