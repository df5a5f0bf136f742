// Package xlog is a small named, leveled logger used by cmd/flashbench.
// internal/core never imports it: nothing on the
// hot read/write path in this repository logs.
package xlog

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level gates which calls actually write a line.
type Level int

const (
	Debug Level = iota
	Info
	Warning
	Error
)

// ParseLevel converts a level name to a Level. It panics on an unknown
// name.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return Debug
	case "info":
		return Info
	case "warning", "warn":
		return Warning
	case "error":
		return Error
	default:
		panic(fmt.Sprintf("xlog: invalid log level %q, must be one of debug, info, warn, error", s))
	}
}

// Logger writes "%-5s | %-15s | message" lines to an underlying
// *log.Logger, filtered by level.
type Logger struct {
	name   string
	level  Level
	logger *log.Logger
}

// New returns a Logger named name, writing to stdout at Info level.
func New(name string) *Logger {
	return &Logger{
		name:   name,
		level:  Info,
		logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
	}
}

// SetLevel changes the minimum level this logger writes.
func (l *Logger) SetLevel(level Level) { l.level = level }

func (l *Logger) Debugf(format string, args ...any) { l.logf(Debug, "DEBUG", format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(Info, "INFO", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(Warning, "WARN", format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(Error, "ERROR", format, args...) }

func (l *Logger) logf(level Level, tag, format string, args ...any) {
	if level < l.level {
		return
	}
	l.logger.Printf("%-5s | %-15s | %s", tag, l.name, fmt.Sprintf(format, args...))
}
