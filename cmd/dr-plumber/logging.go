package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to path, or one that discards everything
// when path is empty. The terminal belongs to the game, so logs never go to
// stdout or stderr while it runs.
func newLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "dr-plumber",
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
