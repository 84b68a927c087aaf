// Package filesink stages rendered documents on disk before they are streamed.
package filesink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// TempFileSink writes documents to uniquely named temporary files. Every file
// is removed once delivery finishes, whether or not it succeeded.
type TempFileSink struct {
	dir string
}

// NewTempFileSink creates a sink rooted at dir. An empty dir uses os.TempDir.
func NewTempFileSink(dir string) *TempFileSink {
	if dir == "" {
		dir = os.TempDir()
	}
	return &TempFileSink{dir: dir}
}

// Dir returns the directory files are staged in.
func (s *TempFileSink) Dir() string {
	return s.dir
}

// Deliver stages the output of write in a temp file with the given extension
// and hands its path to send. Concurrent calls never share a file.
func (s *TempFileSink) Deliver(ctx context.Context, ext string, write func(io.Writer) error, send func(path string) error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("prepare temp dir: %w", err)
	}

	f, err := os.CreateTemp(s.dir, "report-*."+ext)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer s.remove(path)

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return send(path)
}

func (s *TempFileSink) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to remove temp report file", "path", filepath.Base(path), "error", err)
	}
}
