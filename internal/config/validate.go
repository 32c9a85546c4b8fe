package config

import (
	"fmt"
	"strings"
)

// Validate checks a manifest for non-fatal issues and returns warnings.
// Structural errors are already rejected by the schema; everything the
// schema cannot see (duplicates, suspicious paths) becomes a warning so the
// run can still proceed best-effort.
func Validate(m *Manifest) []string {
	var warnings []string

	warnings = append(warnings, duplicateWarnings("tap", m.Packages.Taps)...)
	warnings = append(warnings, duplicateWarnings("formula", m.Packages.Formulae)...)
	warnings = append(warnings, duplicateWarnings("cask", m.Packages.Casks)...)

	seenPatches := make(map[string]bool)
	for _, p := range m.Patches {
		id := p.File + "\x00" + p.Key
		if seenPatches[id] {
			warnings = append(warnings, fmt.Sprintf("duplicate patch for key %q in %s (last one wins)", p.Key, p.File))
		}
		seenPatches[id] = true
	}

	for _, item := range m.LoginItems {
		if !strings.HasSuffix(item, ".app") {
			warnings = append(warnings, fmt.Sprintf("login item %q does not look like an app bundle", item))
		}
	}

	return warnings
}

func duplicateWarnings(kind string, names []string) []string {
	var warnings []string
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("duplicate %s %q in manifest", kind, name))
		}
		seen[name] = true
	}
	return warnings
}
