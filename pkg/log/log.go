// Package log provides the Logger used throughout the emulator. Loggers
// are created from an explicit Config and handed to the components that
// need them, there is no package level logger.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Config configures a Logger.
type Config struct {
	// Level is one of "debug", "info", "warn" or "error".
	// An empty Level defaults to "info".
	Level string
	// Output is where log lines are written. Defaults to os.Stderr.
	Output io.Writer
}

// New creates a Logger backed by logrus from the given Config.
func New(cfg Config) (Logger, error) {
	l := logrus.New()
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}

	if cfg.Output != nil {
		l.SetOutput(cfg.Output)
	} else {
		l.SetOutput(os.Stderr)
	}

	if cfg.Level == "" {
		cfg.Level = "info"
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	l.SetLevel(level)

	return l, nil
}

// Verbose returns the level string for the -v style CLI flags.
func Verbose(v bool) string {
	if v {
		return "debug"
	}
	return "info"
}
