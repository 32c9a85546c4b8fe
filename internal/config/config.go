// Package config provides manifest loading and validation for macprep.yaml.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/macprep/macprep/internal/errors"
	"github.com/macprep/macprep/internal/schema"
)

// Manifest describes the desired machine state.
type Manifest struct {
	Packages   Packages `yaml:"packages"`
	Patches    []Patch  `yaml:"patches"`
	LoginItems []string `yaml:"login_items"`
}

// Packages lists the Homebrew resources to ensure, in apply order:
// taps first, then formulae, then casks.
type Packages struct {
	Taps     []string `yaml:"taps"`
	Formulae []string `yaml:"formulae"`
	Casks    []string `yaml:"casks"`
}

// Patch is one key/value upsert into a line-oriented config file.
type Patch struct {
	File  string `yaml:"file"`
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// Load reads, schema-validates, and parses a manifest file.
// Returns the manifest along with non-fatal warnings. Errors are typed so the
// CLI can derive exit codes via errors.GetExitCode.
func Load(path string) (*Manifest, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Configf("failed to read manifest: %v", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte) (*Manifest, []string, error) {
	// Schema validation runs on the generic document so unknown fields and
	// shape errors are reported with schema paths before typed decoding.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, errors.Configf("failed to parse manifest: %v", err)
	}
	if doc == nil {
		return nil, nil, errors.Config("manifest is empty")
	}
	if err := schema.ValidateManifest(doc); err != nil {
		return nil, nil, errors.Configf("%v", err)
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, nil, errors.Configf("failed to parse manifest: %v", err)
	}

	if err := normalize(&m); err != nil {
		return nil, nil, err
	}

	warnings := Validate(&m)
	return &m, warnings, nil
}

// normalize expands ~ in file paths so the rest of the program only sees
// absolute paths.
func normalize(m *Manifest) error {
	for i := range m.Patches {
		expanded, err := ExpandHome(m.Patches[i].File)
		if err != nil {
			return err
		}
		m.Patches[i].File = expanded
	}
	for i := range m.LoginItems {
		expanded, err := ExpandHome(m.LoginItems[i])
		if err != nil {
			return err
		}
		m.LoginItems[i] = expanded
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Environmentf("cannot resolve home directory: %v", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// TaskCount returns the number of tasks this manifest will produce.
func (m *Manifest) TaskCount() int {
	return len(m.Packages.Taps) + len(m.Packages.Formulae) + len(m.Packages.Casks) +
		len(m.Patches) + len(m.LoginItems)
}
