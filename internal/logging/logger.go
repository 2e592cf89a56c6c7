// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger initialization.
type Config struct {
	// Level is the minimum severity emitted: DEBUG, INFO, WARNING,
	// ERROR or CRITICAL (case-insensitive).
	Level string

	// Format selects the console rendering: "text" for colorized
	// human-readable output, "json" for one JSON object per line.
	// The file sink always writes JSON.
	Format string

	// File, when non-empty, enables a rotating JSON log file at the
	// given path. Parent directories are created as needed.
	File string

	// FileMaxBytes is the size at which the log file rotates.
	FileMaxBytes int64

	// FileBackupCount is how many rotated files to retain.
	FileBackupCount int

	// Caller annotates each event with the emitting file:line.
	Caller bool

	// ConsoleOutput overrides the console sink (default os.Stdout).
	// Used by tests to capture output.
	ConsoleOutput io.Writer
}

// DefaultConfig returns the configuration used before Init is called.
func DefaultConfig() Config {
	return Config{
		Level:           "INFO",
		Format:          "text",
		FileMaxBytes:    10 * 1024 * 1024,
		FileBackupCount: 5,
		Caller:          true,
	}
}

var (
	mu       sync.RWMutex
	log      zerolog.Logger
	fileSink *lumberjack.Logger
)

func init() {
	_ = initLogger(DefaultConfig())
}

// Init configures the global logger. It is safe to call more than once;
// each call rebuilds the logger from scratch, closing any previously
// opened file sink, so repeated initialization never duplicates output.
func Init(cfg Config) error {
	mu.Lock()
	err := initLogger(cfg)
	mu.Unlock()
	if err != nil {
		return err
	}

	Info().
		Str("logger", "logging").
		Str("log_level", strings.ToUpper(cfg.Level)).
		Str("log_format", cfg.Format).
		Str("log_file", cfg.File).
		Msg("Logging initialized")
	return nil
}

// initLogger does the actual setup. Callers must hold mu.
func initLogger(cfg Config) error {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	zerolog.TimestampFieldName = "timestamp"
	zerolog.MessageFieldName = "message"
	zerolog.ErrorFieldName = "error"
	zerolog.CallerFieldName = "caller"
	zerolog.LevelFieldMarshalFunc = marshalLevel
	zerolog.InterfaceMarshalFunc = marshalInterface

	console := cfg.ConsoleOutput
	if console == nil {
		console = os.Stdout
	}

	var consoleSink io.Writer
	if strings.EqualFold(cfg.Format, "text") {
		consoleSink = newConsoleWriter(console)
	} else {
		consoleSink = console
	}

	if fileSink != nil {
		_ = fileSink.Close()
		fileSink = nil
	}

	writer := consoleSink
	if cfg.File != "" {
		if err := ensureLogFile(cfg.File); err != nil {
			return err
		}
		fileSink = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSizeMB(cfg.FileMaxBytes),
			MaxBackups: cfg.FileBackupCount,
		}
		writer = zerolog.MultiLevelWriter(consoleSink, fileSink)
	}

	ctx := zerolog.New(writer).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	log = ctx.Logger()

	bridgeStdlib()
	return nil
}

// Shutdown emits a final log line and closes the file sink. Call it
// before process exit so buffered rotation state is flushed.
func Shutdown() {
	Info().Str("logger", "logging").Msg("Logging shutdown")

	mu.Lock()
	defer mu.Unlock()
	if fileSink != nil {
		_ = fileSink.Close()
		fileSink = nil
	}
}

// ensureLogFile verifies the log file is creatable and writable now,
// so misconfiguration fails at startup rather than on first write.
func ensureLogFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f.Close()
}

// maxSizeMB converts a byte threshold to whole megabytes, rounding up
// so small test values still trigger rotation.
func maxSizeMB(bytes int64) int {
	const mb = 1024 * 1024
	if bytes <= 0 {
		return 10
	}
	size := int((bytes + mb - 1) / mb)
	if size < 1 {
		size = 1
	}
	return size
}

// parseLevel converts a level name to a zerolog level. WARNING and
// CRITICAL follow the configuration vocabulary; zerolog's own names
// (warn, fatal) are accepted as aliases.
func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel, nil
	case "INFO", "":
		return zerolog.InfoLevel, nil
	case "WARNING", "WARN":
		return zerolog.WarnLevel, nil
	case "ERROR":
		return zerolog.ErrorLevel, nil
	case "CRITICAL", "FATAL":
		return zerolog.FatalLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("invalid log level: %q", level)
	}
}

// marshalLevel renders levels uppercase in emitted events, mapping
// zerolog's warn/fatal to the WARNING/CRITICAL vocabulary.
func marshalLevel(l zerolog.Level) string {
	switch l {
	case zerolog.WarnLevel:
		return "WARNING"
	case zerolog.FatalLevel:
		return "CRITICAL"
	default:
		return strings.ToUpper(l.String())
	}
}

// marshalInterface serializes arbitrary field values with goccy/go-json,
// falling back to their string form when they cannot be serialized.
func marshalInterface(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return json.Marshal(fmt.Sprint(v))
	}
	return b, nil
}

// ANSI sequences for the colorized console format.
const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiCyan    = "\x1b[36m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiRed     = "\x1b[31m"
	ansiMagenta = "\x1b[35m"
)

func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			name, _ := i.(string)
			if name == "" {
				name = "???"
			}
			padded := fmt.Sprintf("%-8s", name)
			if noColor {
				return padded
			}
			return levelColor(name) + ansiBold + padded + ansiReset
		},
	}
}

func levelColor(level string) string {
	switch level {
	case "DEBUG":
		return ansiCyan
	case "INFO":
		return ansiGreen
	case "WARNING":
		return ansiYellow
	case "ERROR":
		return ansiRed
	case "CRITICAL":
		return ansiMagenta
	default:
		return ""
	}
}

// bridgeStdlib redirects the stdlib log package and the default slog
// logger into zerolog. Third-party libraries that log through either
// are demoted to WARNING so they cannot flood INFO output.
func bridgeStdlib() {
	stdlog.SetFlags(0)
	stdlog.SetOutput(stdlogWriter{})
	slog.SetDefault(slog.New(NewSlogHandler(slog.LevelWarn)))
}

// stdlogWriter adapts the stdlib log package to zerolog.
type stdlogWriter struct{}

func (stdlogWriter) Write(p []byte) (int, error) {
	logger := Logger()
	logger.Warn().
		Str("logger", "stdlog").
		Msg(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// Logger returns the current global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger. Intended for tests.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// With returns a context for building a derived logger with
// additional fields.
func With() zerolog.Context {
	return Logger().With()
}

// Named returns a logger annotated with a "logger" field, mirroring
// the module.Class naming used across services.
func Named(name string) zerolog.Logger {
	return Logger().With().Str("logger", name).Logger()
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	logger := Logger()
	return logger.Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	logger := Logger()
	return logger.Info()
}

// Warn starts a warning-level event.
func Warn() *zerolog.Event {
	logger := Logger()
	return logger.Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	logger := Logger()
	return logger.Error()
}

// Critical starts a critical-level event. Unlike Fatal it does not
// terminate the process.
func Critical() *zerolog.Event {
	logger := Logger()
	return logger.WithLevel(zerolog.FatalLevel)
}

// Fatal starts a fatal-level event that exits the process after Msg.
func Fatal() *zerolog.Event {
	logger := Logger()
	return logger.Fatal()
}

// Err starts an error-level event with the error attached, or a
// debug-level event when err is nil.
func Err(err error) *zerolog.Event {
	logger := Logger()
	return logger.Err(err)
}

// NewTestLogger returns a logger writing JSON to w, for asserting on
// emitted events in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// NewConsoleTestLogger returns a human-readable logger writing to w.
func NewConsoleTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
}
