package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// loadConfig loads the config file and applies the difficulty preset.
func loadConfig() (config.TetrisConfig, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, err
	}

	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}
	if preset != "" {
		config.ApplyTetrisPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger. The game owns the terminal, so logs go to
// --log-file or nowhere. The returned close func must be called on exit.
func newLogger() (*log.Logger, func() error, error) {
	var w io.Writer = io.Discard
	closeFn := func() error { return nil }

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", flagLogFile, err)
		}
		w = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
