package setup

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucax88x/clockslider/cmd/cli/commands"
	"github.com/lucax88x/clockslider/cmd/cli/config"
	"github.com/lucax88x/clockslider/cmd/cli/console"
	"github.com/spf13/viper"
)

type ExecutionResult = int

const (
	Ok    ExecutionResult = 0
	NotOk ExecutionResult = -1
)

func initViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetEnvPrefix(config.EnvPrefix)
	viperInstance.AutomaticEnv()

	return viperInstance
}

type ProgramExecutor func(ctx context.Context, logger *slog.Logger) error

type ExecutorBuilder func(
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) ProgramExecutor

func Run(buildExecutor ExecutorBuilder) ExecutionResult {
	start := time.Now()

	console := &console.Console{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	viper := initViper()

	cfg, err := config.ReadYaml()

	if err != nil {
		console.Logger(slog.LevelInfo).Error("main: could not read configuration", slog.Any("err", err))
		return NotOk
	}

	cfg.ApplyViper(viper)

	logger := console.Logger(cfg.Level())

	defer func() {
		elapsed := time.Since(start)
		logger.Debug("cli: took", slog.Duration("elapsed", elapsed))
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = buildExecutor(viper, console, cfg)(ctx, logger)

	if err != nil {
		logger.Error("main: failed to execute program", slog.Any("err", err))
		return NotOk
	}

	logger.Debug("main: completed", slog.Int("status_code", Ok))

	return Ok
}

func NewCliExecutor(
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) ProgramExecutor {
	return func(ctx context.Context, logger *slog.Logger) error {
		rootCmd, err := commands.NewRootCmd(ctx, logger, viper, console, cfg)

		if err != nil {
			return err
		}

		return rootCmd.ExecuteContext(ctx)
	}
}
