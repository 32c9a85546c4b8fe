// Package loginitem registers applications as macOS login items via
// System Events. The provisioning flow treats this as an opaque external
// call; all AppleScript details stay here.
package loginitem

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// runOsascript executes an AppleScript snippet and returns its output.
// A variable so tests can substitute a fake without System Events.
var runOsascript = runOsascriptReal

func runOsascriptReal(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("osascript failed: %w: %s", err, strings.TrimSpace(buf.String()))
	}
	return buf.String(), nil
}

// statFunc checks app bundle existence. Overridable in tests.
var statFunc = os.Stat

// Exists reports whether the app bundle is present on disk.
func Exists(appPath string) bool {
	_, err := statFunc(appPath)
	return err == nil
}

// Name returns the login item name for an app path
// (/Applications/kitty.app -> kitty).
func Name(appPath string) string {
	return strings.TrimSuffix(filepath.Base(appPath), ".app")
}

// IsRegistered checks whether the app is already a login item.
func IsRegistered(ctx context.Context, appPath string) (bool, error) {
	out, err := runOsascript(ctx, `tell application "System Events" to get the name of every login item`)
	if err != nil {
		return false, err
	}
	name := Name(appPath)
	for _, item := range strings.Split(out, ",") {
		if strings.TrimSpace(item) == name {
			return true, nil
		}
	}
	return false, nil
}

// Ensure registers the app as a login item when it is not one already.
// Returns true when a registration was performed.
func Ensure(ctx context.Context, appPath string) (bool, error) {
	registered, err := IsRegistered(ctx, appPath)
	if err != nil {
		return false, err
	}
	if registered {
		return false, nil
	}

	script := fmt.Sprintf(
		`tell application "System Events" to make login item at end with properties {path:%q, hidden:false}`,
		appPath)
	if _, err := runOsascript(ctx, script); err != nil {
		return false, err
	}
	return true, nil
}
