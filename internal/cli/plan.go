package cli

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/macprep/macprep/internal/brew"
	"github.com/macprep/macprep/internal/confedit"
	"github.com/macprep/macprep/internal/config"
	"github.com/macprep/macprep/internal/loginitem"
)

// planCounts tallies dry-run results.
type planCounts struct {
	pending   int
	satisfied int
	unknown   int
}

func (c *planCounts) pendingItem(desc string) {
	c.pending++
	out.Println("  > %s", desc)
}

func (c *planCounts) satisfiedItem(desc string) {
	c.satisfied++
	out.Println("  = %s", desc)
}

func (c *planCounts) unknownItem(desc string) {
	c.unknown++
	out.Println("  ? %s", desc)
}

// cmdPlan shows what apply would do without changing anything: presence
// checks only, no installs, no writes, no log entries.
func cmdPlan(args []string, opts *GlobalOptions) int {
	m, path, code := loadManifest(opts)
	if code != 0 {
		return code
	}

	out.Info("Manifest: %s (%d tasks)", path, m.TaskCount())
	out.PlanHeader()

	ctx := context.Background()
	counts := &planCounts{}

	planPackages(ctx, counts, m.Packages.Taps, m.Packages.Formulae, m.Packages.Casks)
	planPatches(counts, m)
	planLoginItems(ctx, counts, m.LoginItems)

	out.Println("")
	out.SummaryItem("Pending", strconv.Itoa(counts.pending))
	out.SummaryItem("Satisfied", strconv.Itoa(counts.satisfied))
	if counts.unknown > 0 {
		out.SummaryItem("Unknown", strconv.Itoa(counts.unknown))
	}
	if counts.pending == 0 && counts.unknown == 0 {
		out.FinalSuccess("Nothing to do.")
	}
	return 0
}

func planPackages(ctx context.Context, counts *planCounts, taps, formulae, casks []string) {
	if len(taps) == 0 && len(formulae) == 0 && len(casks) == 0 {
		return
	}

	out.PhaseHeader(caser.String("packages"))

	b := brew.New()
	if !b.Available(ctx) {
		out.Warning("homebrew unavailable; package state unknown")
		for _, tap := range taps {
			counts.unknownItem("tap " + tap)
		}
		for _, name := range formulae {
			counts.unknownItem("formula " + name)
		}
		for _, name := range casks {
			counts.unknownItem("cask " + name)
		}
		return
	}

	for _, tap := range taps {
		if b.IsTapped(ctx, tap) {
			counts.satisfiedItem("tap " + tap)
		} else {
			counts.pendingItem("tap " + tap)
		}
	}
	for _, name := range formulae {
		if b.IsInstalled(ctx, name, brew.Formula) {
			counts.satisfiedItem("formula " + name)
		} else {
			counts.pendingItem("formula " + name)
		}
	}
	for _, name := range casks {
		if b.IsInstalled(ctx, name, brew.Cask) {
			counts.satisfiedItem("cask " + name)
		} else {
			counts.pendingItem("cask " + name)
		}
	}
}

func planPatches(counts *planCounts, m *config.Manifest) {
	if len(m.Patches) == 0 {
		return
	}

	out.PhaseHeader(caser.String("config patches"))

	for _, p := range m.Patches {
		desc := "patch " + filepath.Base(p.File) + ":" + p.Key
		applied, err := confedit.Applied(p.File, p.Key, p.Value)
		switch {
		case err != nil:
			counts.unknownItem(desc)
		case applied:
			counts.satisfiedItem(desc)
		default:
			counts.pendingItem(desc)
		}
	}
}

func planLoginItems(ctx context.Context, counts *planCounts, items []string) {
	if len(items) == 0 {
		return
	}

	out.PhaseHeader(caser.String("login items"))

	for _, item := range items {
		desc := "login item " + loginitem.Name(item)
		if !loginitem.Exists(item) {
			counts.unknownItem(desc + " (app not installed)")
			continue
		}
		registered, err := loginitem.IsRegistered(ctx, item)
		switch {
		case err != nil:
			counts.unknownItem(desc)
		case registered:
			counts.satisfiedItem(desc)
		default:
			counts.pendingItem(desc)
		}
	}
}
