package cli

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/macprep/macprep/internal/brew"
	"github.com/macprep/macprep/internal/confedit"
	"github.com/macprep/macprep/internal/config"
	"github.com/macprep/macprep/internal/errors"
	"github.com/macprep/macprep/internal/loginitem"
	"github.com/macprep/macprep/internal/model"
	"github.com/macprep/macprep/internal/runlog"
	"github.com/macprep/macprep/internal/runner"
)

// caser title-cases phase headers.
var caser = cases.Title(language.English)

// cmdApply runs the full provisioning flow: confirm, then execute every task
// in manifest order, best-effort, and finish with the summary. Individual
// task failures never change the exit code; the summary and the run log
// carry the aggregate result.
func cmdApply(args []string, opts *GlobalOptions) int {
	m, path, code := loadManifest(opts)
	if code != 0 {
		return code
	}

	logPath, err := runlog.DefaultPath()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	out.Info("Manifest: %s (%d tasks)", path, m.TaskCount())
	out.Println("Run log: %s", logPath)

	if !opts.Yes && !confirm(stdin) {
		out.Println("Aborted; nothing was changed.")
		return 0
	}

	log, err := runlog.Open(logPath)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	defer func() { _ = log.Close() }()

	// Full UUID: header IDs are scan keys in an unbounded log, so they are
	// never abbreviated.
	runID := uuid.NewString()
	if err := log.Header(runID, Version); err != nil {
		out.Warning("%v", err)
	}
	_ = log.Info("manifest: %s (%d tasks)", path, m.TaskCount())

	r := runner.New(out, log)
	report := &model.Report{}
	ctx := context.Background()

	applyPackages(ctx, r, report, m)
	applyPatches(ctx, r, report, m)
	applyLoginItems(ctx, r, report, m)

	r.PrintSummary(report)
	return 0
}

// applyPackages ensures taps, formulae, and casks, in that order.
// When Homebrew itself is unavailable every package task degrades to a
// warning instead of a failure: the precondition is unmet upstream.
func applyPackages(ctx context.Context, r *runner.Runner, report *model.Report, m *config.Manifest) {
	if len(m.Packages.Taps) == 0 && len(m.Packages.Formulae) == 0 && len(m.Packages.Casks) == 0 {
		return
	}

	out.PhaseHeader(caser.String("packages"))

	b := brew.New()
	available := b.Available(ctx)

	ensure := func(label string, do func(ctx context.Context) (brew.EnsureStatus, error)) runner.Action {
		return runner.ActionFunc(func(ctx context.Context) error {
			if !available {
				return runner.Precondition("homebrew unavailable")
			}
			status, err := do(ctx)
			if err != nil {
				return err
			}
			if status == brew.StatusAlreadyPresent {
				out.Verbose("%s already present", label)
			}
			return nil
		})
	}

	for _, tap := range m.Packages.Taps {
		r.Run(ctx, report, "tap "+tap, ensure(tap, func(ctx context.Context) (brew.EnsureStatus, error) {
			return b.EnsureTap(ctx, tap)
		}))
	}
	for _, name := range m.Packages.Formulae {
		r.Run(ctx, report, "formula "+name, ensure(name, func(ctx context.Context) (brew.EnsureStatus, error) {
			return b.Ensure(ctx, name, brew.Formula)
		}))
	}
	for _, name := range m.Packages.Casks {
		r.Run(ctx, report, "cask "+name, ensure(name, func(ctx context.Context) (brew.EnsureStatus, error) {
			return b.Ensure(ctx, name, brew.Cask)
		}))
	}
}

// applyPatches upserts manifest key/value pairs into their config files.
// One Editor spans all patches so each file is backed up at most once per run.
func applyPatches(ctx context.Context, r *runner.Runner, report *model.Report, m *config.Manifest) {
	if len(m.Patches) == 0 {
		return
	}

	out.PhaseHeader(caser.String("config patches"))

	editor := confedit.New()
	for _, p := range m.Patches {
		name := "patch " + filepath.Base(p.File) + ":" + p.Key
		r.Run(ctx, report, name, runner.ActionFunc(func(ctx context.Context) error {
			return editor.UpsertLine(p.File, p.Key, p.Value)
		}))
	}
}

// applyLoginItems registers manifest apps as login items. A missing app
// bundle is an unmet precondition, not a failure: the cask that provides it
// may have failed earlier in the same run. The check happens before an action
// is even constructed, so it is recorded as a caller-declared warning.
func applyLoginItems(ctx context.Context, r *runner.Runner, report *model.Report, m *config.Manifest) {
	if len(m.LoginItems) == 0 {
		return
	}

	out.PhaseHeader(caser.String("login items"))

	for _, item := range m.LoginItems {
		name := "login item " + loginitem.Name(item)
		if !loginitem.Exists(item) {
			r.Warn(report, name, "app not installed")
			continue
		}
		r.Run(ctx, report, name, runner.ActionFunc(func(ctx context.Context) error {
			changed, err := loginitem.Ensure(ctx, item)
			if err != nil {
				return err
			}
			if !changed {
				out.Verbose("%s already registered", name)
			}
			return nil
		}))
	}
}
