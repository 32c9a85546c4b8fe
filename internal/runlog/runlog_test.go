package runlog

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/macprep/macprep/internal/errors"
)

var linePattern = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] (INFO|SUCCESS|FAILURE|WARNING): `)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	if path != "/home/tester/"+FileName {
		t.Errorf("DefaultPath() = %q", path)
	}
}

func TestDefaultPath_NoHome(t *testing.T) {
	t.Setenv("HOME", "")

	_, err := DefaultPath()
	if err == nil {
		t.Fatal("DefaultPath() error = nil, want error without a home directory")
	}
	if got := errors.GetExitCode(err); got != errors.ExitEnvironmentError {
		t.Errorf("GetExitCode() = %d, want %d", got, errors.ExitEnvironmentError)
	}
}

func TestAppend_LineFormat(t *testing.T) {
	restore := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) }
	defer func() { nowFunc = restore }()

	l := openTestLog(t)
	if err := l.Success("installed %s", "ripgrep"); err != nil {
		t.Fatalf("Success() error: %v", err)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	want := "[2026-03-14 09:26:53] SUCCESS: installed ripgrep\n"
	if string(data) != want {
		t.Errorf("log line = %q, want %q", string(data), want)
	}
}

func TestAppend_Levels(t *testing.T) {
	l := openTestLog(t)

	if err := l.Info("a"); err != nil {
		t.Fatal(err)
	}
	if err := l.Warning("b"); err != nil {
		t.Fatal(err)
	}
	if err := l.Failure("c"); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(l.Path())
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if !linePattern.MatchString(line) {
			t.Errorf("malformed log line: %q", line)
		}
	}
}

func TestOpen_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	for i := 0; i < 2; i++ {
		l, err := Open(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := l.Header("run-id", "dev"); err != nil {
			t.Fatal(err)
		}
		if err := l.Close(); err != nil {
			t.Fatal(err)
		}
	}

	data, _ := os.ReadFile(path)
	if got := strings.Count(string(data), headerMarker); got != 2 {
		t.Errorf("header count = %d, want 2 (log must never be truncated)", got)
	}
}

func TestLastRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	l, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = l.Header("first", "dev")
	_ = l.Info("old entry")
	_ = l.Header("second", "dev")
	_ = l.Success("new entry")
	_ = l.Close()

	lines, err := LastRun(path)
	if err != nil {
		t.Fatalf("LastRun() error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("LastRun() returned %d lines, want 2: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "second") {
		t.Errorf("first line should be the latest header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "new entry") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestLastRun_NoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("stray line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	lines, err := LastRun(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Errorf("LastRun() = %v, want empty for headerless log", lines)
	}
}
