package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lucax88x/clockslider/cmd/cli/config"
	"github.com/lucax88x/clockslider/cmd/cli/console"
	"github.com/lucax88x/clockslider/cmd/cli/runner"
	"github.com/lucax88x/clockslider/internal/clockslider"
	"github.com/lucax88x/clockslider/internal/event"
	"github.com/lucax88x/clockslider/internal/geometry"
	"github.com/lucax88x/clockslider/internal/slider"
	"github.com/lucax88x/clockslider/internal/timeofday"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type simulateFlags struct {
	path     string
	duration int
	periods  string
	abort    bool
}

func NewSimulateCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) *cobra.Command {
	flags := &simulateFlags{}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "replay a pointer path against the configured slider and print the result",
		Example: `  clockslider simulate --start 00:00 --finish 03:00 --path "178,100 150,25"
  clockslider simulate --clock 24h --duration 90 --periods PM,PM`,
		RunE: func(_ *cobra.Command, args []string) error {
			return runner.RunCmdE(ctx, logger, viper, console, args, cfg, runSimulateCmd(flags))
		},
	}

	simulateCmd.Flags().StringVar(&flags.path, "path", "", `pointer samples "x,y x,y ...": first begins, last ends`)
	simulateCmd.Flags().IntVar(&flags.duration, "duration", 0, "place the finish hand this many minutes after the start first")
	simulateCmd.Flags().StringVar(&flags.periods, "periods", "", "start and finish period first, e.g. AM,PM")
	simulateCmd.Flags().BoolVar(&flags.abort, "abort", false, "abort the drag instead of releasing it")

	simulateCmd.SetOut(console.Stdout)
	simulateCmd.SetErr(console.Stderr)

	return simulateCmd
}

func runSimulateCmd(flags *simulateFlags) runner.RunE {
	return func(
		ctx context.Context,
		_ *console.Console,
		_ []string,
		di *clockslider.Clockslider,
	) error {
		points, err := ParsePath(flags.path)

		if err != nil {
			return err
		}

		if flags.duration > 0 {
			di.Controller.SetInitialDuration(flags.duration)
		}

		if flags.periods != "" {
			if err := applyPeriods(di.Controller, flags.periods); err != nil {
				return err
			}
		}

		if len(points) == 0 {
			return handle(ctx, di, event.Snapshot, geometry.Point{})
		}

		if err := handle(ctx, di, event.Begin, points[0]); err != nil {
			return err
		}

		if di.Controller.Active() == slider.None {
			di.Logger.WarnContext(ctx, "simulate: first sample grabbed no handle",
				slog.Float64("x", points[0].X),
				slog.Float64("y", points[0].Y))

			return handle(ctx, di, event.Snapshot, geometry.Point{})
		}

		for _, p := range points[1:] {
			if err := handle(ctx, di, event.Move, p); err != nil {
				return err
			}
		}

		if flags.abort {
			return handle(ctx, di, event.Abort, geometry.Point{})
		}

		return handle(ctx, di, event.End, points[len(points)-1])
	}
}

func handle(ctx context.Context, di *clockslider.Clockslider, kind event.Kind, p geometry.Point) error {
	line, err := event.Build(kind, p)

	if err != nil {
		return err
	}

	return di.Server.Handle(ctx, line)
}

func applyPeriods(controller *slider.Controller, periods string) error {
	startValue, finishValue, found := strings.Cut(periods, ",")

	if !found {
		return fmt.Errorf("simulate: periods must be start,finish. Got: %s", periods)
	}

	start, err := timeofday.ParsePeriod(startValue)

	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	finish, err := timeofday.ParsePeriod(finishValue)

	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	controller.SetPeriods(start, finish)

	return nil
}
