// Package logging provides structured zerolog loggers for findash.
//
// Loggers are built from a Config, carried through context.Context, and tag
// events with a per-invocation trace id so a dashboard session or a fetch run
// can be followed across components. File output is rotated.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output destinations.
const (
	OutputStderr  = "stderr"
	OutputFile    = "file"
	OutputDiscard = "discard"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Rotation defaults used when Config leaves them unset.
const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
)

// Config describes how a logger should be constructed.
type Config struct {
	Level      string
	Format     string
	Output     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	Caller     bool

	// DiscardOnFallback drops events instead of writing them to stderr when
	// the file cannot be used. Set it when something else owns the terminal.
	DiscardOnFallback bool
}

// LogPathResult is the outcome of NewLoggerWithPath.
type LogPathResult struct {
	Logger zerolog.Logger

	// UsingFile reports whether events are written to FilePath.
	UsingFile bool
	FilePath  string

	// FallbackUsed is set when a file was requested but could not be used.
	FallbackUsed   bool
	FallbackReason string

	// Discarding reports that events go nowhere.
	Discarding bool

	closer io.Closer
}

// Close releases the log file, if any.
func (r *LogPathResult) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewLogger builds a logger writing to w.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: cfg.Output == OutputFile}
	}

	ctx := zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		Hook(TraceHook{}).
		With().
		Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// NewLoggerWithPath builds a logger according to cfg. When a file is
// requested but cannot be prepared, the logger falls back to stderr (or
// discards events if cfg.DiscardOnFallback) and the reason is reported in the
// result.
func NewLoggerWithPath(cfg Config) LogPathResult {
	switch {
	case cfg.Output == OutputDiscard:
		return LogPathResult{Logger: NewLogger(cfg, io.Discard), Discarding: true}
	case cfg.Output != OutputFile || cfg.File == "":
		return LogPathResult{Logger: NewLogger(cfg, os.Stderr)}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		return fallbackResult(cfg, fmt.Sprintf("cannot create log directory: %v", err))
	}
	if err := checkWritable(cfg.File); err != nil {
		return fallbackResult(cfg, fmt.Sprintf("cannot open log file: %v", err))
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}

	return LogPathResult{
		Logger:    NewLogger(cfg, rotator),
		UsingFile: true,
		FilePath:  cfg.File,
		closer:    rotator,
	}
}

func fallbackResult(cfg Config, reason string) LogPathResult {
	cfg.Output = OutputStderr
	var w io.Writer = os.Stderr
	if cfg.DiscardOnFallback {
		w = io.Discard
	}
	return LogPathResult{
		Logger:         NewLogger(cfg, w),
		FallbackUsed:   true,
		FallbackReason: reason,
		Discarding:     cfg.DiscardOnFallback,
	}
}

// checkWritable checks the file can be opened for append before handing it
// to the rotator, which only reports errors on the first write.
func checkWritable(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	return f.Close()
}

// ComponentLogger returns a child logger tagged with component.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where logs are going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user file logging is unavailable.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: file logging unavailable (%s), logging to stderr\n", reason)
}

// PrintDiscardWarning tells the user file logging is unavailable and events
// are dropped.
func PrintDiscardWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: file logging unavailable (%s), logs discarded\n", reason)
}

// ErrInvalidFormat is returned by ValidateFormat.
var ErrInvalidFormat = errors.New("invalid log format")

// ValidateFormat checks a format name.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatConsole:
		return nil
	default:
		return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidFormat, format, FormatJSON, FormatConsole)
	}
}
