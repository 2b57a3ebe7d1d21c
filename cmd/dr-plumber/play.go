package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dr-plumber/internal/config"
	"github.com/vovakirdan/dr-plumber/internal/core"
	"github.com/vovakirdan/dr-plumber/internal/games/plumber"
	"github.com/vovakirdan/dr-plumber/internal/platform/tui"
	"github.com/vovakirdan/dr-plumber/internal/registry"
	"github.com/vovakirdan/dr-plumber/internal/storage"
)

func runPlay(cmd *cobra.Command, f *flags) error {
	opts, err := config.NewOptions(f.level, f.fps, f.speed)
	if err != nil {
		return err
	}

	tuning, source, err := config.LoadPlumber(f.config)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(f.logPath)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer closer.Close()

	logger.Info("tuning loaded", "source", source)
	plumber.SetTuning(tuning)

	game, err := registry.Create(plumber.ID)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	cfg := core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickRate:     opts.FPS,
		Seed:         f.seed,
		Level:        opts.Level,
		Speed:        string(opts.Speed),
		FallInterval: tuning.FallInterval(opts.Speed),
	}

	// History is optional; the game runs without it.
	var history tui.HistoryStore
	store, err := storage.Open(f.dbPath)
	if err != nil {
		logger.Warn("could not open history database", "path", f.dbPath, "err", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not open history database: %v\n", err)
	} else {
		defer store.Close()
		history = store
	}

	return tui.Run(game, history, logger, cfg)
}
