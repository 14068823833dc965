package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	titleColor   = color.New(color.Bold)
)

var out io.Writer = color.Output

// SetOutput redirects all messages to w. A nil writer restores stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = color.Output
	}
	out = w
}

// JSON outputs data as indented JSON
func JSON(data interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// List prints a title followed by one "  - item" line per entry
func List(title string, items []string) {
	_, _ = titleColor.Fprintln(out, title)
	for _, item := range items {
		_, _ = fmt.Fprintf(out, "  - %s\n", item)
	}
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = successColor.Fprintf(out, "✓ "+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(out, "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = warnColor.Fprintf(out, "! "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = infoColor.Fprintf(out, "→ "+format+"\n", args...)
}

// Print prints a plain message
func Print(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(out, format+"\n", args...)
}

// Blank prints an empty line
func Blank() {
	_, _ = fmt.Fprintln(out)
}
