// Package brew wraps Homebrew for idempotent package provisioning.
//
// Every Ensure* operation checks presence first and only invokes the install
// action when the package is absent, so re-running the whole provisioning
// flow is a no-op for already-satisfied state.
package brew

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PackageKind distinguishes Homebrew formulae from casks.
type PackageKind int

const (
	Formula PackageKind = iota
	Cask
)

// String returns the human label for the kind.
func (k PackageKind) String() string {
	if k == Cask {
		return "cask"
	}
	return "formula"
}

// EnsureStatus reports what an Ensure operation did.
type EnsureStatus int

const (
	StatusAlreadyPresent EnsureStatus = iota
	StatusInstalled
	StatusFailed
)

// String returns the human label for the status.
func (s EnsureStatus) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusFailed:
		return "failed"
	default:
		return "already present"
	}
}

// runBrew executes a brew subcommand and returns its combined output.
// A variable so tests can substitute a fake without invoking Homebrew.
var runBrew = runBrewReal

func runBrewReal(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "brew", args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	return buf.String(), err
}

// Brew is the Homebrew adapter.
type Brew struct{}

// New creates a Brew adapter.
func New() *Brew {
	return &Brew{}
}

// Available reports whether the brew executable responds.
func (b *Brew) Available(ctx context.Context) bool {
	_, err := runBrew(ctx, "--version")
	return err == nil
}

// IsInstalled checks whether a package is already installed.
// A non-zero exit from brew list means "not installed", not an error.
func (b *Brew) IsInstalled(ctx context.Context, name string, kind PackageKind) bool {
	args := []string{"list", "--versions", name}
	if kind == Cask {
		args = []string{"list", "--cask", "--versions", name}
	}
	_, err := runBrew(ctx, args...)
	return err == nil
}

// Install installs a package. Output is captured, never shown on the
// terminal; on failure the tail of brew's output is folded into the error so
// it reaches the run log.
func (b *Brew) Install(ctx context.Context, name string, kind PackageKind) error {
	args := []string{"install", name}
	if kind == Cask {
		args = []string{"install", "--cask", name}
	}
	out, err := runBrew(ctx, args...)
	if err != nil {
		return fmt.Errorf("brew install %s failed: %w: %s", name, err, outputTail(out))
	}
	return nil
}

// Ensure installs a package only when absent.
func (b *Brew) Ensure(ctx context.Context, name string, kind PackageKind) (EnsureStatus, error) {
	if b.IsInstalled(ctx, name, kind) {
		return StatusAlreadyPresent, nil
	}
	if err := b.Install(ctx, name, kind); err != nil {
		return StatusFailed, err
	}
	return StatusInstalled, nil
}

// IsTapped checks whether a tap is already configured.
func (b *Brew) IsTapped(ctx context.Context, tap string) bool {
	out, err := runBrew(ctx, "tap")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == tap {
			return true
		}
	}
	return false
}

// EnsureTap adds a tap only when absent.
func (b *Brew) EnsureTap(ctx context.Context, tap string) (EnsureStatus, error) {
	if b.IsTapped(ctx, tap) {
		return StatusAlreadyPresent, nil
	}
	out, err := runBrew(ctx, "tap", tap)
	if err != nil {
		return StatusFailed, fmt.Errorf("brew tap %s failed: %w: %s", tap, err, outputTail(out))
	}
	return StatusInstalled, nil
}

// outputTail returns the last few lines of command output for error messages.
func outputTail(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return strings.Join(lines, " / ")
}
