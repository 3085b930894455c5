// Package applog provides the structured logging used around each Interpret
// call: one event per compile/execute outcome, tagged with an execution id,
// formatted as text or JSON.
package applog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

// Logger wraps a configured logrus.Logger.
type Logger struct {
	*logrus.Logger
}

// Config selects the logger's level and output format.
type Config struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "text" or "json"
	Output io.Writer
}

// New builds a Logger from cfg, defaulting to info/text/stderr.
func New(cfg Config) *Logger {
	l := logrus.New()

	if cfg.Output != nil {
		l.SetOutput(cfg.Output)
	} else {
		l.SetOutput(os.Stderr)
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch cfg.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&easy.Formatter{
			TimestampFormat: "2006-01-02 15:04:05",
			LogFormat:       "[%lvl%] %time% %msg%\n",
		})
	}

	return &Logger{Logger: l}
}

// WithExecution returns an entry tagged with the execution id for one
// Interpret call.
func (l *Logger) WithExecution(execID string) *logrus.Entry {
	return l.WithField("execution_id", execID)
}
