// Package logging builds the zap logger. The terminal belongs to the TUI,
// so logs go to a file unless configured otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/website1975/vatly12CTST/internal/config"
)

// Stderr as the log file name selects standard error.
const Stderr = "-"

// Logger bundles the logger with the writer behind it so other sinks,
// such as the span exporter, can share the file.
type Logger struct {
	*zap.Logger
	Out    io.Writer
	closer io.Closer
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// New creates a logger from cfg.
func New(cfg config.LogConfig) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var (
		out    io.Writer
		closer io.Closer
	)
	switch path := cfg.File; path {
	case Stderr:
		out = os.Stderr
	default:
		if path == "" {
			path = DefaultFile()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encoderConfig)
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	return &Logger{
		Logger: zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)),
		Out:    out,
		closer: closer,
	}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop(), Out: io.Discard}
}

// DefaultFile returns $XDG_STATE_HOME/vatly12/vatly12.log, falling back to
// ~/.local/state.
func DefaultFile() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "vatly12.log"
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "vatly12", "vatly12.log")
}
