// Package runlog maintains the durable macprep run log.
//
// The log lives at a fixed path in the user's home directory and is strictly
// append-only: it is never truncated or rotated. Every line carries a
// timestamp and a level, and every run starts with a header line, so past
// runs can be reconstructed by scanning for headers.
package runlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/macprep/macprep/internal/errors"
)

// FileName is the name of the run log file inside the home directory.
const FileName = ".macprep.log"

// Log levels used in run log lines.
const (
	levelInfo    = "INFO"
	levelSuccess = "SUCCESS"
	levelFailure = "FAILURE"
	levelWarning = "WARNING"
)

// headerMarker makes run header lines recognizable when scanning the log.
const headerMarker = "===== macprep run"

// timestampLayout is the fixed [YYYY-MM-DD HH:MM:SS] line prefix format.
const timestampLayout = "2006-01-02 15:04:05"

// nowFunc returns the current time. Overridable in tests.
var nowFunc = time.Now

// DefaultPath returns the fixed run log path in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Environmentf("cannot resolve home directory: %v", err)
	}
	return filepath.Join(home, FileName), nil
}

// Log is an open handle to the run log file.
type Log struct {
	path string
	f    *os.File
}

// Open opens the run log for appending, creating it if needed.
// The caller must Close the returned Log so partial runs still flush.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open run log: %w", err)
	}
	return &Log{path: path, f: f}, nil
}

// Path returns the absolute path of the log file.
func (l *Log) Path() string {
	return l.path
}

// Header appends the run header line that begins a run's entries.
func (l *Log) Header(runID, version string) error {
	return l.write(levelInfo, "%s %s (macprep %s) =====", headerMarker, runID, version)
}

// write appends one timestamped line to the log. The file is opened with
// O_APPEND, so each line is durable as soon as the write returns.
func (l *Log) write(level, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s: %s\n", nowFunc().Format(timestampLayout), level, msg)
	if _, err := l.f.WriteString(line); err != nil {
		return fmt.Errorf("cannot append to run log: %w", err)
	}
	return nil
}

// Info appends an INFO line.
func (l *Log) Info(format string, args ...interface{}) error {
	return l.write(levelInfo, format, args...)
}

// Success appends a SUCCESS line.
func (l *Log) Success(format string, args ...interface{}) error {
	return l.write(levelSuccess, format, args...)
}

// Failure appends a FAILURE line.
func (l *Log) Failure(format string, args ...interface{}) error {
	return l.write(levelFailure, format, args...)
}

// Warning appends a WARNING line.
func (l *Log) Warning(format string, args ...interface{}) error {
	return l.write(levelWarning, format, args...)
}

// Close releases the file handle.
func (l *Log) Close() error {
	return l.f.Close()
}

// LastRun reads the log file and returns the lines of the most recent run,
// starting at its header line. Returns an empty slice if the log has no runs.
func LastRun(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read run log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, headerMarker) {
			lines = lines[:0]
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read run log: %w", err)
	}
	if len(lines) > 0 && !strings.Contains(lines[0], headerMarker) {
		// Log predates run headers; show nothing rather than a partial run.
		return []string{}, nil
	}
	return lines, nil
}
