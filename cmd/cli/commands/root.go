package commands

import (
	"context"
	"log/slog"

	"github.com/lucax88x/clockslider/cmd/cli/config"
	"github.com/lucax88x/clockslider/cmd/cli/console"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "clockslider",
		Short:         "pick a time range by dragging two hands around a clock face",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetOut(console.Stdout)
	rootCmd.SetErr(console.Stderr)

	if err := BindSliderFlags(rootCmd, viper); err != nil {
		return nil, err
	}

	rootCmd.AddCommand(
		NewStartCmd(ctx, logger, viper, console, cfg),
		NewSendCmd(ctx, logger, viper, console, cfg),
		NewSimulateCmd(ctx, logger, viper, console, cfg),
	)

	return rootCmd, nil
}
