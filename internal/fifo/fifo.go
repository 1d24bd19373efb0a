package fifo

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/lucax88x/clockslider/internal/encoding"
)

// Separator ends one event on the pipe. A newline works as well.
const Separator = '¬'

//nolint:gochecknoglobals // ok
var separator = []byte(string(Separator))

type Reader struct {
	logger *slog.Logger
}

func NewFifoReader(logger *slog.Logger) *Reader {
	return &Reader{
		logger,
	}
}

func (f *Reader) makeSureFifoExists(path string) error {
	stat, err := os.Stat(path)

	if err == nil {
		if stat.Mode()&os.ModeNamedPipe != 0 {
			return nil
		}

		f.logger.Warn("fifo: path exists but is not a named pipe, replacing it", slog.String("path", path))

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("fifo: could not remove existing file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("fifo: could not stat file: %w", err)
	}

	if err := syscall.Mkfifo(path, 0o640); err != nil {
		return fmt.Errorf("fifo: could not create fifo file: %w", err)
	}

	f.logger.Info("fifo: created fifo file", slog.String("path", path))

	return nil
}

func (f *Reader) Start(path string) error {
	if err := f.makeSureFifoExists(path); err != nil {
		return fmt.Errorf("fifo: error creating file: %w", err)
	}
	return nil
}

// Listen forwards every event on the pipe at path to ch until ctx is done.
// A broken pipe is recreated and reopened a few times before giving up.
func (f *Reader) Listen(
	ctx context.Context,
	path string,
	ch chan<- string,
) error {
	maxRetries := 3
	retryDelay := time.Second * 2

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := f.listenAttempt(ctx, path, ch)

		if err == nil || ctx.Err() != nil {
			return ctx.Err()
		}

		f.logger.ErrorContext(ctx, "fifo: listen attempt failed",
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

		if err := f.makeSureFifoExists(path); err != nil {
			f.logger.ErrorContext(ctx, "fifo: failed to recreate fifo", slog.Any("error", err))
		}
	}

	return fmt.Errorf("fifo: failed to establish stable connection after %d attempts", maxRetries)
}

func (f *Reader) listenAttempt(
	ctx context.Context,
	path string,
	ch chan<- string,
) error {
	if err := f.makeSureFifoExists(path); err != nil {
		return err
	}

	// opened read-write so the pipe never reports EOF when a writer leaves
	pipe, err := os.OpenFile(path, os.O_RDWR|syscall.O_NONBLOCK, os.ModeNamedPipe)

	if err != nil {
		return fmt.Errorf("fifo: error opening for reading: %w", err)
	}

	stop := context.AfterFunc(ctx, func() {
		if closeErr := pipe.Close(); closeErr != nil {
			f.logger.Error("fifo: error closing pipe", slog.Any("error", closeErr))
		}
	})

	defer func() {
		if stop() {
			_ = pipe.Close()
		}
	}()

	f.logger.InfoContext(ctx, "fifo: listening", slog.String("path", path))

	err = f.ReadEvents(ctx, pipe, ch)

	if ctx.Err() != nil {
		return nil
	}

	return err
}

// ReadEvents splits r into events and sends the non-empty ones to ch. It
// returns when r is exhausted or ctx is done.
func (f *Reader) ReadEvents(ctx context.Context, r io.Reader, ch chan<- string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			f.logger.ErrorContext(ctx, "fifo: recovered from panic while reading", slog.Any("panic", rec))
			err = fmt.Errorf("fifo: reader panic: %v", rec)
		}
	}()

	scanner := bufio.NewScanner(r)
	scanner.Split(splitEvents)

	for scanner.Scan() {
		line, decodeErr := encoding.DecodeLine(scanner.Bytes())

		if decodeErr != nil {
			f.logger.WarnContext(ctx, "fifo: dropping undecodable event", slog.Any("error", decodeErr))
			continue
		}

		if line == "" {
			continue
		}

		select {
		case ch <- line:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("fifo: read error: %w", err)
	}

	return nil
}

func splitEvents(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	newline := bytes.IndexByte(data, '\n')
	sep := bytes.Index(data, separator)

	switch {
	case sep >= 0 && (newline < 0 || sep < newline):
		return sep + len(separator), data[:sep], nil
	case newline >= 0:
		return newline + 1, data[:newline], nil
	case atEOF:
		return len(data), data, nil
	default:
		return 0, nil, nil
	}
}

// Remove deletes the pipe; a missing pipe is fine.
func (f *Reader) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("fifo: could not remove fifo: %w", err)
	}

	return nil
}

// Write sends msg to whoever is listening on the pipe at path. It fails
// straight away when nobody is.
func Write(path string, msg string) error {
	pipe, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, os.ModeNamedPipe)

	if err != nil {
		return fmt.Errorf("fifo: could not open for writing, is the listener running? %w", err)
	}

	defer pipe.Close()

	if _, err := pipe.WriteString(msg); err != nil {
		return fmt.Errorf("fifo: could not write: %w", err)
	}

	return nil
}
