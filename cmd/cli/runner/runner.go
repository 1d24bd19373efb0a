package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucax88x/clockslider/cmd/cli/config"
	"github.com/lucax88x/clockslider/cmd/cli/console"
	"github.com/lucax88x/clockslider/internal/clockslider"
	"github.com/spf13/viper"
)

type RunE func(
	ctx context.Context,
	console *console.Console,
	args []string,
	di *clockslider.Clockslider,
) error

// RunCmdE applies flags and environment on top of cfg, wires the
// dependencies and hands them to cmd.
func RunCmdE(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	args []string,
	cfg *config.Cfg,
	cmd RunE,
) error {
	cfg.ApplyViper(viper)

	if err := cfg.ExpandPaths(); err != nil {
		return err
	}

	if viper.IsSet(config.KeyLogLevel) {
		logger = console.Logger(cfg.Level())
	}

	di, err := clockslider.NewClockslider(logger, console, cfg)

	if err != nil {
		return fmt.Errorf("runner: could not build dependencies: %w", err)
	}

	return cmd(ctx, console, args, di)
}
