package clockslider

import (
	"fmt"
	"log/slog"

	"github.com/lucax88x/clockslider/cmd/cli/config"
	"github.com/lucax88x/clockslider/cmd/cli/console"
	"github.com/lucax88x/clockslider/internal/clock"
	"github.com/lucax88x/clockslider/internal/command"
	"github.com/lucax88x/clockslider/internal/fifo"
	"github.com/lucax88x/clockslider/internal/server"
	"github.com/lucax88x/clockslider/internal/slider"
)

type Clockslider struct {
	Logger     *slog.Logger
	Cfg        *config.Cfg
	Console    *console.Console
	Clock      clock.Clock
	Controller *slider.Controller
	Fifo       *fifo.Reader
	Command    *command.Command
	Server     *server.FifoServer
}

func NewClockslider(
	logger *slog.Logger,
	console *console.Console,
	cfg *config.Cfg,
) (*Clockslider, error) {
	clk := clock.NewSystemClock()

	options, err := cfg.SliderOptions(clk)

	if err != nil {
		return nil, fmt.Errorf("clockslider: %w", err)
	}

	controller, err := slider.NewController(logger, options)

	if err != nil {
		return nil, fmt.Errorf("clockslider: could not create controller: %w", err)
	}

	reader := fifo.NewFifoReader(logger)
	cmd := command.NewCommand(logger)
	fifoServer := server.NewFifoServer(logger, controller, reader, cmd, console.Stdout, cfg.OnRelease)

	return &Clockslider{
		Logger:     logger,
		Cfg:        cfg,
		Console:    console,
		Clock:      clk,
		Controller: controller,
		Fifo:       reader,
		Command:    cmd,
		Server:     fifoServer,
	}, nil
}
