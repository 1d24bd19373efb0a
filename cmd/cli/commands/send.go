package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lucax88x/clockslider/cmd/cli/config"
	"github.com/lucax88x/clockslider/cmd/cli/console"
	"github.com/lucax88x/clockslider/internal/event"
	"github.com/lucax88x/clockslider/internal/fifo"
	"github.com/lucax88x/clockslider/internal/geometry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ErrInvalidSendArgs = errors.New("send: expected <event> or <event> <x> <y>")

func NewSendCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	_ *console.Console,
	cfg *config.Cfg,
) *cobra.Command {
	sendCmd := &cobra.Command{
		Use:       "send <begin|move|end|abort|snapshot> [x y]",
		Short:     "send one pointer event to a running clockslider",
		ValidArgs: []string{event.Begin, event.Move, event.End, event.Abort, event.Snapshot},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg.ApplyViper(viper)

			if err := cfg.ExpandPaths(); err != nil {
				return err
			}

			line, err := BuildSendLine(args)

			if err != nil {
				return err
			}

			logger.DebugContext(ctx, "send: writing", slog.String("event", line), slog.String("path", cfg.Fifo))

			return fifo.Write(cfg.Fifo, line)
		},
	}

	return sendCmd
}

// BuildSendLine turns command line arguments into one pipe event.
func BuildSendLine(args []string) (string, error) {
	if len(args) != 1 && len(args) != 3 {
		return "", ErrInvalidSendArgs
	}

	var p geometry.Point

	if len(args) == 3 {
		var err error

		if p, err = parsePoint(args[1], args[2]); err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidSendArgs, err)
		}
	}

	line, err := event.Build(args[0], p)

	if err != nil {
		return "", err
	}

	// rejects unknown event names
	if _, err := event.FromLine(line); err != nil {
		return "", err
	}

	return line, nil
}
