// Package confedit performs idempotent key/value upserts into line-oriented
// config files.
//
// An upsert leaves at most one uncommented "key = value" line per key, and
// applying the same upsert twice converges to byte-identical file content.
// The first time a run touches a pre-existing file, a timestamped backup copy
// of the prior version is written next to it.
package confedit

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

// nowFunc returns the current time. Overridable in tests for stable backup names.
var nowFunc = time.Now

// Editor applies upserts and tracks which files it has backed up during the
// current run, so each file is backed up at most once per run.
type Editor struct {
	backedUp map[string]bool
}

// New creates an Editor for one run.
func New() *Editor {
	return &Editor{backedUp: make(map[string]bool)}
}

// UpsertLine sets key to value in the file at path. If an uncommented line
// matching `^\s*key\s*=` exists its value is replaced in place; otherwise a
// new "key = value" line is appended. A missing file is created without a
// backup.
func (e *Editor) UpsertLine(path, key, value string) error {
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return os.WriteFile(path, []byte(fmt.Sprintf("%s = %s\n", key, value)), 0644)
	case err != nil:
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	if err := e.backup(path, data); err != nil {
		return err
	}

	updated := upsert(string(data), key, value)
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// Applied reports whether the file already has exactly the content an
// upsert would produce, so a dry run can tell "already applied" from
// "would change".
func Applied(path, key, value string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot read %s: %w", path, err)
	}
	content := string(data)
	return upsert(content, key, value) == content, nil
}

// backup writes <path>.bak.<unix_timestamp> the first time this run touches path.
func (e *Editor) backup(path string, data []byte) error {
	if e.backedUp[path] {
		return nil
	}
	backupPath := fmt.Sprintf("%s.bak.%d", path, nowFunc().Unix())
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return fmt.Errorf("cannot write backup %s: %w", backupPath, err)
	}
	e.backedUp[path] = true
	return nil
}

// upsert rewrites content so exactly one uncommented key line remains.
// The first matching line is replaced; later uncommented duplicates are
// dropped so the at-most-one invariant holds even for files that already
// violate it.
func upsert(content, key, value string) string {
	keyPattern := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(key) + `\s*=`)
	newLine := fmt.Sprintf("%s = %s", key, value)

	if content == "" {
		return newLine + "\n"
	}

	hadTrailingNewline := strings.HasSuffix(content, "\n")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	var out []string
	replaced := false
	for _, line := range lines {
		if keyPattern.MatchString(line) {
			if replaced {
				continue
			}
			out = append(out, newLine)
			replaced = true
			continue
		}
		out = append(out, line)
	}
	if !replaced {
		out = append(out, newLine)
	}

	result := strings.Join(out, "\n")
	if hadTrailingNewline || !replaced {
		result += "\n"
	}
	return result
}
