package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

type Command struct {
	logger *slog.Logger
}

func NewCommand(logger *slog.Logger) *Command {
	return &Command{
		logger,
	}
}

// Run executes name with the process environment plus env, given as
// KEY=value pairs, and returns its stdout.
func (c Command) Run(ctx context.Context, env []string, name string, arg ...string) (string, error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		c.logger.DebugContext(ctx, "command: took", slog.String("name", name), slog.Duration("elapsed", elapsed))
	}()

	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Env = append(os.Environ(), env...)

	c.logger.DebugContext(ctx, "command: env", slog.Any("env", env))

	out, err := cmd.Output()

	if err != nil {
		//nolint:errorlint // no wrap
		return "", fmt.Errorf("command: could not run command '%s'. %v", name, err)
	}

	return string(out), nil
}
