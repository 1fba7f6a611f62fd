// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var root = newLogger(os.Stderr, log.InfoLevel)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
	})
	return l
}

// Configure 根据配置的日志级别重建根 logger，输出到 w（为空时使用 stderr）。
func Configure(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	root = newLogger(w, ParseLevel(level))
}

// ParseLevel maps a textual level to a log.Level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Root returns the process logger.
func Root() *log.Logger {
	return root
}

// For returns a child logger tagged with the component name, e.g. "ai" or "ws".
func For(component string) *log.Logger {
	return root.WithPrefix(component)
}
