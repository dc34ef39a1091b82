package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields mirrors logrus.Fields so callers don't import logrus directly.
type Fields map[string]interface{}

// Log wraps logrus.Logger.
type Log struct {
	*logrus.Logger
	closer io.Closer
}

type Options struct {
	Level string // debug, info, warn, error. Defaults to info.
	File  string // rotate into this file instead of Out
	JSON  bool
	Out   io.Writer // defaults to stderr

	MaxSizeMB  int
	MaxBackups int
}

// New builds a logger from opts. When File is set output goes to a
// lumberjack rotating file.
func New(opts Options) (*Log, error) {
	l := logrus.New()

	level := strings.ToLower(strings.TrimSpace(opts.Level))
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
	}
	l.SetLevel(lvl)

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var closer io.Closer
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			Compress:   true,
		}
		out, closer = lj, lj
	}
	l.SetOutput(out)

	if opts.JSON || opts.File != "" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}

	return &Log{Logger: l, closer: closer}, nil
}

// Discard returns a logger that drops everything. Used by tests and as
// the zero value for optional loggers.
func Discard() *Log {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Log{Logger: l}
}

func (l *Log) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

func (l *Log) WithFields(fields Fields) *logrus.Entry {
	return l.Logger.WithFields(logrus.Fields(fields))
}

// Close flushes and closes the log file if there is one.
func (l *Log) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
