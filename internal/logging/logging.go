// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.Disabled,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
}

// Config selects the level and destination of log output.
type Config struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
	// JSON forces structured output even on a terminal.
	JSON bool `mapstructure:"json" yaml:"json"`
}

// ParseLevel maps a level name to a zerolog level. Unknown names fall back
// to info and report false.
func ParseLevel(level string) (zerolog.Level, bool) {
	l, ok := logLevelMatches[strings.ToUpper(strings.TrimSpace(level))]
	if !ok {
		return zerolog.InfoLevel, false
	}
	return l, true
}

// Setup installs the global logger and returns it with a cleanup func.
// Logs go to stderr, as colored console output when stderr is a terminal, or
// to cfg.File when set.
func Setup(cfg Config) (zerolog.Logger, func(), error) {
	level, ok := ParseLevel(cfg.Level)
	if !ok && cfg.Level != "" {
		return zerolog.Nop(), nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}
	zerolog.SetGlobalLevel(level)

	cleanup := func() {}
	var out io.Writer = os.Stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("error opening log file: %w", err)
		}
		out = f
		cleanup = func() { _ = f.Close() }
	} else if !cfg.JSON && isTerminalAttached() {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02 15:04:05",
		}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger, cleanup, nil
}

func isTerminalAttached() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) && runtime.GOOS != "windows"
}
