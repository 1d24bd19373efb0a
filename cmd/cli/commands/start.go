package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/lucax88x/clockslider/cmd/cli/config"
	"github.com/lucax88x/clockslider/cmd/cli/config/settings"
	"github.com/lucax88x/clockslider/cmd/cli/console"
	"github.com/lucax88x/clockslider/cmd/cli/runner"
	"github.com/lucax88x/clockslider/internal/clockslider"
	"github.com/lucax88x/clockslider/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewStartCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) *cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "listen for pointer events on the named pipe",
		RunE: func(_ *cobra.Command, args []string) error {
			return runner.RunCmdE(ctx, logger, viper, console, args, cfg, runStartCmd())
		},
	}

	startCmd.SetOut(console.Stdout)
	startCmd.SetErr(console.Stderr)

	return startCmd
}

func runStartCmd() runner.RunE {
	return func(
		ctx context.Context,
		console *console.Console,
		_ []string,
		di *clockslider.Clockslider,
	) error {
		if err := runner.CreatePidFile(settings.PidFilePath); err != nil {
			return err
		}

		defer func() {
			if err := runner.RemovePidFile(settings.PidFilePath); err != nil {
				di.Logger.ErrorContext(ctx, "start: could not remove pid file", slog.Any("error", err))
			}
		}()

		path := di.Cfg.Fifo

		if err := startFifoWithRetry(ctx, di, path); err != nil {
			return err
		}

		defer func() {
			if err := di.Fifo.Remove(path); err != nil {
				di.Logger.ErrorContext(ctx, "start: could not remove fifo", slog.Any("error", err))
			}
		}()

		if err := report.Write(console.Stdout, di.Controller.Snapshot()); err != nil {
			return err
		}

		err := di.Server.Start(ctx, path)

		di.Logger.InfoContext(ctx, "start: shutdown complete")

		return err
	}
}

func startFifoWithRetry(ctx context.Context, di *clockslider.Clockslider, path string) error {
	maxRetries := 5
	retryDelay := time.Second * 2

	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		di.Logger.InfoContext(
			ctx,
			"start: starting fifo",
			slog.String("path", path),
			slog.Int("attempt", attempt),
		)

		if err = di.Fifo.Start(path); err == nil {
			return nil
		}

		di.Logger.ErrorContext(ctx, "start: could not start fifo",
			slog.Any("error", err),
			slog.Int("attempt", attempt),
			slog.Int("maxRetries", maxRetries))

		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return err
}
