// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
)

// Writer handles CLI output formatting.
type Writer struct {
	out     io.Writer
	err     io.Writer
	color   bool
	quiet   bool
	verbose bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetVerbose enables or disables verbose mode.
func (w *Writer) SetVerbose(verbose bool) {
	w.verbose = verbose
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Verbose prints a message only in verbose mode.
func (w *Writer) Verbose(format string, args ...interface{}) {
	if !w.verbose {
		return
	}
	w.Println(format, args...)
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%swarning:%s %s", yellow, reset, msg)
	} else {
		w.Errorln("warning: %s", msg)
	}
}

// TaskSuccess prints task success with its duration.
func (w *Writer) TaskSuccess(name, duration string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("\033[32m✓\033[0m %s %s(%s)%s", name, dim, duration, reset)
	} else {
		w.Println("+ %s (%s)", name, duration)
	}
}

// TaskWarned prints a task that ended with an unmet precondition.
func (w *Writer) TaskWarned(name, reason string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("\033[33m!\033[0m %s %s(%s)%s", name, dim, reason, reset)
	} else {
		w.Println("! %s (%s)", name, reason)
	}
}

// TaskFailed prints task failure.
func (w *Writer) TaskFailed(name string, err error) {
	if w.color {
		w.Errorln("\033[31m✗ %s failed:\033[0m %v", name, err)
	} else {
		w.Errorln("x %s failed: %v", name, err)
	}
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	if w.color {
		w.Println("\033[1m=== %s ===\033[0m", title)
	} else {
		w.Println("=== %s ===", title)
	}
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	// Simple check - could be enhanced with golang.org/x/term
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
)

// ErrorPrefix prints an error message with macprep prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%smacprep:%s %s", red, reset, msg)
	} else {
		w.Errorln("macprep: %s", msg)
	}
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold+cyan, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
	w.Println("")
}

// SummaryBucket prints a bucket label with its item count, colorized by role.
func (w *Writer) SummaryBucket(label string, count int, role BucketRole) {
	value := fmt.Sprintf("%d", count)
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, roleColor(role, count), value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryBucketItem prints one task name inside a bucket, colorized by role.
func (w *Writer) SummaryBucketItem(name string, role BucketRole) {
	if w.color {
		w.Println("    %s%s%s", roleColor(role, 1), name, reset)
	} else {
		w.Println("    %s", name)
	}
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s", dim, label, reset, value)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// BucketRole selects the color used for a summary bucket.
type BucketRole int

const (
	BucketSuccess BucketRole = iota
	BucketWarning
	BucketFailure
)

// roleColor maps a bucket role to its ANSI color. Empty buckets render dim
// so a zero failure count does not read as an alarm.
func roleColor(role BucketRole, count int) string {
	if count == 0 {
		return dim
	}
	switch role {
	case BucketWarning:
		return yellow
	case BucketFailure:
		return red
	default:
		return green
	}
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", green, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", red, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// PlanHeader prints the dry-run header.
func (w *Writer) PlanHeader() {
	w.Println("")
	if w.color {
		w.Println("%s=== PLAN (no changes will be made) ===%s", bold+yellow, reset)
	} else {
		w.Println("=== PLAN (no changes will be made) ===")
	}
	w.Println("")
}

// Hint prints a hint message for the user.
func (w *Writer) Hint(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", dim, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// Prompt prints a prompt without a trailing newline, bold on terminals.
func (w *Writer) Prompt(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Print("%s%s%s ", bold, msg, reset)
	} else {
		w.Print("%s ", msg)
	}
}

// PhaseHeader prints a provisioning phase header.
func (w *Writer) PhaseHeader(phase string) {
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold+blue, phase, reset)
	} else {
		w.Println("=== %s ===", phase)
	}
}
