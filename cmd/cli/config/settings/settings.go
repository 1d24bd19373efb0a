package settings

import (
	"os"
	"path/filepath"
)

// Settings are the fallbacks used for anything config.yaml, the
// environment and the flags leave unset.
type Settings struct {
	ClockType        string
	Size             *int
	RingWidth        *int
	DragTolerance    *int
	IncrementMinutes *int
	Hands            *int
	Start            string
	Finish           string
	LogLevel         string
}

//nolint:gochecknoglobals // ok
var Slider = Settings{
	ClockType:        "12h",
	Size:             pointer(200),
	RingWidth:        pointer(44),
	DragTolerance:    pointer(30),
	IncrementMinutes: pointer(5),
	Hands:            pointer(2),
	Start:            "00:00",
	Finish:           "03:00",
	LogLevel:         "info",
}

//nolint:gochecknoglobals // ok
var FifoPath = filepath.Join(os.TempDir(), "clockslider.fifo")

//nolint:gochecknoglobals // ok
var PidFilePath = filepath.Join(os.TempDir(), "clockslider.pid")

func pointer(i int) *int {
	return &i
}
