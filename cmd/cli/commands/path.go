package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucax88x/clockslider/internal/geometry"
)

var ErrInvalidPath = errors.New("commands: invalid path")

// ParsePath reads space separated "x,y" points.
func ParsePath(s string) ([]geometry.Point, error) {
	fields := strings.Fields(s)
	points := make([]geometry.Point, 0, len(fields))

	for _, field := range fields {
		x, y, found := strings.Cut(field, ",")

		if !found {
			return nil, fmt.Errorf("%w: %q is not x,y", ErrInvalidPath, field)
		}

		p, err := parsePoint(x, y)

		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPath, field, err)
		}

		points = append(points, p)
	}

	return points, nil
}

func parsePoint(x, y string) (geometry.Point, error) {
	px, err := strconv.ParseFloat(strings.TrimSpace(x), 64)

	if err != nil {
		return geometry.Point{}, err
	}

	py, err := strconv.ParseFloat(strings.TrimSpace(y), 64)

	if err != nil {
		return geometry.Point{}, err
	}

	return geometry.Point{X: px, Y: py}, nil
}
