// Package logging configures the charmbracelet logger that backs dolasm's
// slog output. Everything it needs comes from DOLASM_LOG_* variables.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

const defaultPrefix = "dolasm "

// Env is the logging configuration read from the environment.
type Env struct {
	Level  log.Level
	Prefix string
	// ToFile sends output to dolasm-<timestamp>-debug.log in the working
	// directory instead of stderr.
	ToFile bool
}

// FromEnv reads DOLASM_LOG_LEVEL, DOLASM_LOG_PREFIX and DOLASM_LOG_TO_FILE.
func FromEnv() Env {
	env := Env{
		Level:  ParseLevel(os.Getenv("DOLASM_LOG_LEVEL")),
		Prefix: os.Getenv("DOLASM_LOG_PREFIX"),
		ToFile: os.Getenv("DOLASM_LOG_TO_FILE") == "1",
	}
	if env.Prefix == "" {
		env.Prefix = defaultPrefix
	}
	return env
}

// ParseLevel accepts the charmbracelet level names in any case. Anything
// else, including the empty string, is info.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Logger is a charmbracelet logger that owns its output file, if any.
type Logger struct {
	*log.Logger
	file io.Closer
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// NewWithWriter logs to w. The caller keeps ownership of w.
func NewWithWriter(w io.Writer, env Env) *Logger {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           env.Level,
		Prefix:          env.Prefix,
	})
	return &Logger{Logger: lg}
}

// New logs to stderr, or to a timestamped file when env.ToFile is set and
// the file can be created.
func New(env Env) *Logger {
	if !env.ToFile {
		return NewWithWriter(os.Stderr, env)
	}
	name := fmt.Sprintf("dolasm-%s-debug.log", time.Now().Format("20060102-150405"))
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		lg := NewWithWriter(os.Stderr, env)
		lg.Warn("log file unavailable, using stderr", "file", name, "err", err)
		return lg
	}
	lg := NewWithWriter(f, env)
	lg.file = f
	return lg
}
