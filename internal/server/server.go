package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/lucax88x/clockslider/internal/event"
	"github.com/lucax88x/clockslider/internal/fifo"
	"github.com/lucax88x/clockslider/internal/report"
	"github.com/lucax88x/clockslider/internal/slider"
	"golang.org/x/sync/errgroup"
)

const hookTimeout = 10 * time.Second

// Runner executes the release hook.
type Runner interface {
	Run(ctx context.Context, env []string, name string, arg ...string) (string, error)
}

// FifoServer feeds pointer events read from the pipe into one controller.
// Events are handled one at a time, in order.
type FifoServer struct {
	logger     *slog.Logger
	controller *slider.Controller
	fifo       *fifo.Reader
	runner     Runner
	out        io.Writer
	onRelease  []string
}

func NewFifoServer(
	logger *slog.Logger,
	controller *slider.Controller,
	fifo *fifo.Reader,
	runner Runner,
	out io.Writer,
	onRelease []string,
) *FifoServer {
	return &FifoServer{
		logger,
		controller,
		fifo,
		runner,
		out,
		onRelease,
	}
}

// Start listens on the pipe at path until ctx is done.
func (f FifoServer) Start(ctx context.Context, path string) error {
	f.logger.InfoContext(ctx, "server: starting FIFO server", slog.String("path", path))

	ch := make(chan string, 100)
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return f.fifo.Listen(groupCtx, path, ch)
	})

	group.Go(func() error {
		for {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case msg := <-ch:
				if err := f.handleSafely(groupCtx, msg); err != nil {
					f.logger.ErrorContext(groupCtx, "server: message handling failed",
						slog.Any("error", err),
						slog.String("message", msg))
				}
			}
		}
	})

	err := group.Wait()

	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		f.logger.InfoContext(ctx, "server: context cancelled")
		return nil
	}

	return err
}

func (f FifoServer) handleSafely(ctx context.Context, msg string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.ErrorContext(ctx, "server: recovered from panic while handling message",
				slog.Any("panic", r),
				slog.String("message", msg))
			err = nil
		}
	}()

	return f.Handle(ctx, msg)
}

// Handle applies a single event line to the controller.
func (f FifoServer) Handle(ctx context.Context, msg string) error {
	in, err := event.FromLine(msg)

	if err != nil {
		return fmt.Errorf("server: could not parse event: %w", err)
	}

	switch in.Event {
	case event.Begin:
		handle := f.controller.BeginDrag(in.Point())
		f.logger.DebugContext(ctx, "server: begin", slog.String("handle", handle.String()))
	case event.Move:
		f.controller.ContinueDrag(in.Point())
	case event.End:
		released := f.controller.EndDrag(in.Point())

		if released == slider.None {
			return nil
		}

		if err := f.write(); err != nil {
			return err
		}

		f.runHook(ctx)
	case event.Abort:
		f.controller.AbortDrag()
		return f.write()
	case event.Snapshot:
		return f.write()
	}

	return nil
}

func (f FifoServer) write() error {
	if err := report.Write(f.out, f.controller.Snapshot()); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func (f FifoServer) runHook(ctx context.Context) {
	if len(f.onRelease) == 0 {
		return
	}

	hookCtx, cancel := context.WithTimeout(ctx, hookTimeout)
	defer cancel()

	_, err := f.runner.Run(hookCtx, HookEnv(f.controller.Snapshot()), f.onRelease[0], f.onRelease[1:]...)

	if err != nil {
		f.logger.ErrorContext(ctx, "server: release hook failed", slog.Any("error", err))
	}
}

// HookEnv describes the committed range to the release hook.
func HookEnv(s slider.Snapshot) []string {
	return []string{
		"CLOCKSLIDER_START=" + s.Start.String(),
		"CLOCKSLIDER_FINISH=" + s.Finish.String(),
		"CLOCKSLIDER_RANGE=" + strconv.Itoa(s.TimeRange),
		"CLOCKSLIDER_ROTATION=" + s.RotationCount.String(),
		"CLOCKSLIDER_DRAG=" + s.DragID.String(),
	}
}
