package console

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/lucax88x/clockslider/internal/clock"
)

type Console struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Logger writes colored logs to Stderr.
func (c *Console) Logger(level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(
		c.Stderr,
		&tint.Options{Level: level, TimeFormat: clock.Time},
	))
}
