// Package logging builds the zap logger used by the canvasgame binaries
// Output never goes to stdout or stderr, which belong to the terminal host
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	Dir        = "logs"
	FileName   = "canvasgame.log"
	MaxSize    = 10 * 1024 * 1024 // Rotate on startup beyond this many bytes
	timeLayout = "20060102-150405"
)

// Options control logger construction
type Options struct {
	Debug bool   // Logging is disabled unless set
	Level string // debug, info, warn or error; empty means debug
	Dir   string // Defaults to Dir
}

// Setup returns a logger writing JSON lines to Dir/FileName
// With Debug unset it returns a no-op logger and no file is touched
// The returned func flushes the logger and restores the standard library logger
func Setup(opts Options) (*zap.Logger, func(), error) {
	if !opts.Debug {
		return zap.NewNop(), func() {}, nil
	}

	level := zapcore.DebugLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
	}

	dir := opts.Dir
	if dir == "" {
		dir = Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := rotate(path, time.Now()); err != nil {
		return nil, nil, err
	}

	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
		DisableCaller:    true,
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	undo := zap.RedirectStdLog(logger)
	return logger, func() {
		_ = logger.Sync()
		undo()
	}, nil
}

// rotate renames an oversized log file aside with a timestamp suffix
func rotate(path string, now time.Time) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= MaxSize {
		return nil
	}
	ext := filepath.Ext(path)
	rotated := path[:len(path)-len(ext)] + "-" + now.Format(timeLayout) + ext
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	return nil
}
