package logger

import (
	"io"
	"log"
	"os"
)

type LogLevel int

const (
	LevelWarn LogLevel = iota - 1
	LevelInfo
	LevelDebug
	LevelTrace
)

type Logger struct {
	*log.Logger
	level     LogLevel
	isVerbose bool
}

type Option func(*Logger)

func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.Logger = log.New(w, l.Logger.Prefix(), l.Logger.Flags())
	}
}

func WithPrefix(prefix string) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), prefix, l.Logger.Flags())
	}
}

func WithFlags(flags int) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), l.Logger.Prefix(), flags)
	}
}

// WithLevel sets the most detailed level that is printed. Anything above
// LevelInfo also turns verbose output on.
func WithLevel(level LogLevel) Option {
	return func(l *Logger) {
		l.level = level
		l.isVerbose = level >= LevelDebug
	}
}

func New(options ...Option) *Logger {
	l := &Logger{
		Logger:    log.New(os.Stderr, "", log.LstdFlags),
		level:     LevelInfo,
		isVerbose: false,
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

// Discard returns a logger that prints nothing. Handy as a default for
// components constructed without one.
func Discard() *Logger {
	return New(WithOutput(io.Discard), WithFlags(0))
}

func (l *Logger) SetVerbose(verbose bool) {
	l.isVerbose = verbose
}

func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.printf(LevelWarn, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LevelInfo {
		l.printf(LevelInfo, format, args...)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.isVerbose {
		l.printf(LevelDebug, format, args...)
	}
}

func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level >= LevelTrace {
		l.printf(LevelTrace, format, args...)
	}
}

func (l *Logger) printf(level LogLevel, format string, args ...interface{}) {
	l.Logger.Printf(level.String()+": "+format, args...)
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.Logger.Fatalf("FATAL: "+format, args...)
}

func (lvl LogLevel) String() string {
	switch lvl {
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	default:
		return "LOG"
	}
}
