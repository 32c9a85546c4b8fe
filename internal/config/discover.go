package config

import (
	"os"
	"path/filepath"

	"github.com/macprep/macprep/internal/errors"
)

// ManifestFileName is the name of the manifest file.
const ManifestFileName = "macprep.yaml"

// fallbackDir is the per-user config directory searched when no manifest is
// found in or above the working directory.
const fallbackDir = ".config/macprep"

// ErrNoManifest is returned when no manifest can be found.
var ErrNoManifest = errors.NotFound("manifest", "macprep.yaml (searched the working directory, its parents, and ~/.config/macprep)")

// FindManifest locates the manifest: walks up from the working directory,
// then falls back to ~/.config/macprep/macprep.yaml.
func FindManifest() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Environmentf("cannot determine working directory: %v", err)
	}
	return FindManifestFrom(cwd)
}

// FindManifestFrom walks up from startDir looking for macprep.yaml, then
// checks the per-user fallback location.
func FindManifestFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, ManifestFileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNoManifest
	}
	fallback := filepath.Join(home, fallbackDir, ManifestFileName)
	if _, err := os.Stat(fallback); err == nil {
		return fallback, nil
	}

	return "", ErrNoManifest
}
