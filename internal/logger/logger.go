// Package logger provides leveled debug logging for cpfn and cpfp.
//
// Log lines go to stderr, separate from the user-facing messages that the
// output package writes to stdout:
//
//	[DEBUG] 2026-02-03 10:30:45 cpfn: run: systemctl restart nginx
//	[WARN] 2026-02-03 10:30:45 cpfp: useradd failed status=9
//
// By default only Warn and Error are shown; Init(true) (the --verbose flag)
// enables Debug and Info.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger handles leveled logging.
type Logger struct {
	level  Level
	prefix string
	output io.Writer
	mu     sync.Mutex
}

var std = &Logger{
	level:  LevelWarn,
	output: os.Stderr,
}

// Init sets the global verbosity.
func Init(verbose bool) {
	std.mu.Lock()
	defer std.mu.Unlock()

	if verbose {
		std.level = LevelDebug
	} else {
		std.level = LevelWarn
	}
}

// SetPrefix sets the program name printed before every message.
func SetPrefix(prefix string) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.prefix = prefix
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

// SetOutput sets the output destination. A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	std.output = w
}

// GetLevel returns the current log level.
func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.level
}

func (l *Logger) write(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	if l.prefix != "" {
		msg = l.prefix + ": " + msg
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	_, _ = fmt.Fprintf(l.output, "[%s] %s %s\n", level.String(), timestamp, msg)
}

func formatFields(msg string, fields map[string]interface{}) string {
	if len(fields) == 0 {
		return msg
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, msg)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}

// Debug logs a debug message. Only shown in verbose mode.
func Debug(format string, args ...interface{}) {
	std.write(LevelDebug, fmt.Sprintf(format, args...))
}

// Info logs an informational message. Only shown in verbose mode.
func Info(format string, args ...interface{}) {
	std.write(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	std.write(LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	std.write(LevelError, fmt.Sprintf(format, args...))
}

// DebugFields logs a debug message with sorted key=value fields.
func DebugFields(msg string, fields map[string]interface{}) {
	std.write(LevelDebug, formatFields(msg, fields))
}

// WarnFields logs a warning message with sorted key=value fields.
func WarnFields(msg string, fields map[string]interface{}) {
	std.write(LevelWarn, formatFields(msg, fields))
}

// LogError logs err with context. A nil err is ignored.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	std.write(LevelError, fmt.Sprintf("%s: %v", msg, err))
}
