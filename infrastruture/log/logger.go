// Package logger provides the colored, prefixed logger every component logs through.
package logger

import (
	"errors"
	"io"
	"log"
	"strings"
)

const (
	infoColor    = "\033[32m"
	warningColor = "\033[33m"
	errorColor   = "\033[31m"
	resetColor   = "\033[0m"
)

var (
	ErrEmptyPrefix = errors.New("logger prefix is empty")
	ErrNilWriter   = errors.New("logger writer is nil")
)

// Logger writes lines shaped "[PREFIX] [LEVEL] message" with the prefix in
// the component color and the level in its own color.
type Logger struct {
	out *log.Logger
}

// New creates a logger for one component.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if w == nil {
		return nil, ErrNilWriter
	}

	return &Logger{
		out: log.New(w, color+"["+prefix+"]"+resetColor+" ", log.LstdFlags),
	}, nil
}

func (l *Logger) Info(msg string) {
	l.write(infoColor, "INFO", msg)
}

func (l *Logger) Warning(msg string) {
	l.write(warningColor, "WARNING", msg)
}

func (l *Logger) Error(msg string) {
	l.write(errorColor, "ERROR", msg)
}

func (l *Logger) write(color, level, msg string) {
	l.out.Printf("%s[%s]%s %s", color, level, resetColor, msg)
}
