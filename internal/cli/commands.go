package cli

import (
	stderrors "errors"
	"os"

	"github.com/macprep/macprep/internal/config"
	"github.com/macprep/macprep/internal/errors"
	"github.com/macprep/macprep/internal/output"
	"github.com/macprep/macprep/internal/runlog"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// loadManifest resolves and loads the manifest, printing warnings.
// Returns the manifest, its path, and exit code 0 on success; nil and the
// exit code derived from the error's kind on failure.
func loadManifest(opts *GlobalOptions) (*config.Manifest, string, int) {
	path := opts.File
	if path == "" {
		var err error
		path, err = config.FindManifest()
		if err != nil {
			out.ErrorPrefix("%v", err)
			if stderrors.Is(err, config.ErrNoManifest) {
				out.Hint("create macprep.yaml or pass --file <path>")
			}
			return nil, "", errors.GetExitCode(err)
		}
	}

	m, warnings, err := config.Load(path)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, "", errors.GetExitCode(err)
	}
	for _, w := range warnings {
		out.Warning("%s", w)
	}
	return m, path, 0
}

// cmdConfig prints the resolved manifest and its source path.
func cmdConfig(args []string, opts *GlobalOptions) int {
	m, path, code := loadManifest(opts)
	if code != 0 {
		return code
	}

	out.Println("Manifest: %s", path)

	out.Section("Packages")
	out.List(append(append(append([]string{}, m.Packages.Taps...), m.Packages.Formulae...), m.Packages.Casks...))

	out.Section("Patches")
	patches := make([]string, 0, len(m.Patches))
	for _, p := range m.Patches {
		patches = append(patches, p.File+": "+p.Key+" = "+p.Value)
	}
	out.List(patches)

	out.Section("Login items")
	out.List(m.LoginItems)

	return 0
}

// cmdLog prints the run log path and the most recent run's entries.
func cmdLog(args []string) int {
	path, err := runlog.DefaultPath()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	out.Println("Run log: %s", path)

	lines, err := runlog.LastRun(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			out.Hint("no runs recorded yet")
			return 0
		}
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	if len(lines) == 0 {
		out.Hint("no runs recorded yet")
		return 0
	}

	out.Println("")
	for _, line := range lines {
		out.Println("%s", line)
	}
	return 0
}
