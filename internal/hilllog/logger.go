// Package hilllog provides the leveled logger used by the hillchart commands.
package hilllog

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type Level uint8

const (
	NoLogging Level = iota
	ErrorLevel
	WarningLevel
	InfoLevel
	DebugLevel
)

// ParseLevel parses a level name. The empty string is the warning level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return NoLogging, nil
	case "error":
		return ErrorLevel, nil
	case "", "warn", "warning":
		return WarningLevel, nil
	case "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	default:
		return NoLogging, fmt.Errorf("unknown log level %q", s)
	}
}

type Logger struct {
	*log.Logger
	level Level
}

func NewDefaultLogger() *Logger {
	return NewLogger(log.Default(), WarningLevel)
}

func NewLogger(log *log.Logger, level Level) *Logger {
	return &Logger{
		Logger: log,
		level:  level,
	}
}

// Discard returns a logger that logs nothing.
func Discard() *Logger {
	return NewLogger(log.New(io.Discard, "", 0), NoLogging)
}

// Level returns the logger's level.
func (l *Logger) Level() Level { return l.level }

func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.level >= ErrorLevel {
		l.Printf("error: "+format, args...)
	}
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	if l.level >= WarningLevel {
		l.Printf("warning: "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level >= InfoLevel {
		l.Printf("info: "+format, args...)
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level >= DebugLevel {
		l.Printf("debug: "+format, args...)
	}
}
