// Package logging builds the process logger. The TUI owns the terminal, so
// logs go to a file unless stderr is asked for explicitly.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sant0-9/answergpt/internal/config"
)

// Stderr as a file name sends logs to standard error.
const Stderr = "-"

// Options control where and how much is logged. Empty fields fall back to the config.
type Options struct {
	Level   string
	File    string
	Verbose bool
}

// New builds a JSON logger from zap's production defaults.
func New(cfg config.LogConfig, opts Options) (*zap.Logger, error) {
	level := opts.Level
	if level == "" {
		level = cfg.Level
	}
	if opts.Verbose {
		level = "debug"
	}

	zcfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	path, err := outputPath(cfg, opts)
	if err != nil {
		return nil, err
	}
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func outputPath(cfg config.LogConfig, opts Options) (string, error) {
	file := opts.File
	if file == "" {
		file = cfg.File
	}
	if file == Stderr {
		return "stderr", nil
	}
	if file == "" {
		var err error
		if file, err = config.LogPath(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return file, nil
}
