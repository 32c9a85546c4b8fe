package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/macprep/macprep/internal/output"
)

// captureOutput swaps the shared writer for buffer-backed one.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	restore := out
	out = output.NewWithWriters(stdout, stderr, false)
	t.Cleanup(func() { out = restore })
	return stdout, stderr
}

func TestParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantYes       bool
		wantQuiet     bool
		wantVerbose   bool
		wantFile      string
		wantRemaining []string
		wantErr       bool
	}{
		{
			name:          "no flags",
			args:          []string{"apply"},
			wantRemaining: []string{"apply"},
		},
		{
			name:          "--yes flag",
			args:          []string{"--yes", "apply"},
			wantYes:       true,
			wantRemaining: []string{"apply"},
		},
		{
			name:          "short yes flag",
			args:          []string{"apply", "-y"},
			wantYes:       true,
			wantRemaining: []string{"apply"},
		},
		{
			name:          "--file with space",
			args:          []string{"--file", "custom.yaml", "plan"},
			wantFile:      "custom.yaml",
			wantRemaining: []string{"plan"},
		},
		{
			name:          "--file=value",
			args:          []string{"--file=custom.yaml", "plan"},
			wantFile:      "custom.yaml",
			wantRemaining: []string{"plan"},
		},
		{
			name:          "-- passthrough",
			args:          []string{"apply", "--", "--verbose"},
			wantRemaining: []string{"apply", "--", "--verbose"},
		},
		{
			name:    "--file without value",
			args:    []string{"apply", "--file"},
			wantErr: true,
		},
		{
			name:    "quiet and verbose conflict",
			args:    []string{"-q", "-v", "apply"},
			wantErr: true,
		},
		{
			name:          "quiet alone",
			args:          []string{"-q", "apply"},
			wantQuiet:     true,
			wantRemaining: []string{"apply"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)

			opts, remaining, err := parseGlobalFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseGlobalFlags() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGlobalFlags() error: %v", err)
			}

			if opts.Yes != tt.wantYes {
				t.Errorf("Yes = %v, want %v", opts.Yes, tt.wantYes)
			}
			if opts.Quiet != tt.wantQuiet {
				t.Errorf("Quiet = %v, want %v", opts.Quiet, tt.wantQuiet)
			}
			if opts.Verbose != tt.wantVerbose {
				t.Errorf("Verbose = %v, want %v", opts.Verbose, tt.wantVerbose)
			}
			if opts.File != tt.wantFile {
				t.Errorf("File = %q, want %q", opts.File, tt.wantFile)
			}
			if !reflect.DeepEqual(remaining, tt.wantRemaining) {
				t.Errorf("remaining = %v, want %v", remaining, tt.wantRemaining)
			}
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	if code := Run(nil); code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	_, stderr := captureOutput(t)

	if code := Run([]string{"instal"}); code != 2 {
		t.Errorf("Run() = %d, want 2", code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("unknown command")) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_Version(t *testing.T) {
	if code := Run([]string{"version"}); code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}
}

func TestRun_FlagError(t *testing.T) {
	captureOutput(t)

	if code := Run([]string{"apply", "--quiet", "--verbose"}); code != 2 {
		t.Errorf("Run() = %d, want 2", code)
	}
}

func TestRun_UnreadableManifest(t *testing.T) {
	_, stderr := captureOutput(t)

	code := Run([]string{"config", "--file", filepath.Join(t.TempDir(), "nope.yaml")})

	if code != 2 {
		t.Errorf("Run() = %d, want 2 (manifest errors map to the config exit code)", code)
	}
	if !strings.Contains(stderr.String(), "failed to read manifest") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_NoManifestAnywhere(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	t.Setenv("HOME", t.TempDir())
	stdout, stderr := captureOutput(t)

	code := Run([]string{"config"})

	if code != 2 {
		t.Errorf("Run() = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "manifest not found") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "create macprep.yaml or pass --file") {
		t.Errorf("stdout missing discovery hint: %q", stdout.String())
	}
}
