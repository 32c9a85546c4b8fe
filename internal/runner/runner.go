// Package runner executes provisioning tasks sequentially and accumulates
// their outcomes into a report.
//
// The runner is non-fatal by design: every error an action returns (or panic
// it raises) is caught at the task boundary and converted into an outcome.
// No task result ever aborts the run; the invoking command always reaches the
// summary phase.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/macprep/macprep/internal/model"
	"github.com/macprep/macprep/internal/output"
	"github.com/macprep/macprep/internal/runlog"
)

// Runner executes tasks one at a time in invocation order, logging each
// outcome to the run log and printing a terminal line per task.
type Runner struct {
	out *output.Writer
	log *runlog.Log
}

// New creates a Runner writing to the given output writer and run log.
func New(out *output.Writer, log *runlog.Log) *Runner {
	return &Runner{out: out, log: log}
}

// Run executes a named action, measures its wall-clock duration, classifies
// the result, records it into the report, and returns the outcome. Run never
// returns an error: failures and unmet preconditions become report entries.
func (r *Runner) Run(ctx context.Context, report *model.Report, name string, action Action) model.Outcome {
	r.out.Verbose("running %s", name)

	start := time.Now()
	err := runAction(ctx, action)
	elapsed := time.Since(start)

	res := model.TaskResult{Name: name, Duration: elapsed, Err: err}

	var pe *PreconditionError
	switch {
	case err == nil:
		res.Outcome = model.OutcomeSuccess
		r.out.TaskSuccess(name, formatDuration(elapsed))
		r.note(r.log.Success("%s (%s)", name, formatDuration(elapsed)))
	case errors.As(err, &pe):
		res.Outcome = model.OutcomeWarning
		r.out.TaskWarned(name, pe.Reason)
		r.note(r.log.Warning("%s: %s", name, pe.Reason))
	default:
		res.Outcome = model.OutcomeFailure
		r.out.TaskFailed(name, err)
		r.note(r.log.Failure("%s: %v (%s)", name, err, formatDuration(elapsed)))
	}

	report.Add(res)
	return res.Outcome
}

// Warn records a caller-declared warning without executing anything.
// Used when the caller detects an unmet precondition before an action can
// even be constructed.
func (r *Runner) Warn(report *model.Report, name, reason string) {
	r.out.TaskWarned(name, reason)
	r.note(r.log.Warning("%s: %s", name, reason))
	report.Add(model.TaskResult{
		Name:    name,
		Outcome: model.OutcomeWarning,
		Err:     Precondition("%s", reason),
	})
}

// PrintSummary renders the three outcome buckets in recording order, the
// cumulative elapsed time, and a final verdict line. Empty buckets are
// rendered with a zero count, never omitted. The rendering depends only on
// the report value and writes only through the runner's output writer.
func (r *Runner) PrintSummary(report *model.Report) {
	r.out.SummaryHeader("Provisioning Summary")

	printBucket(r.out, "Succeeded", report.Succeeded(), output.BucketSuccess)
	printBucket(r.out, "Warnings", report.Warned(), output.BucketWarning)
	printBucket(r.out, "Failed", report.Failed(), output.BucketFailure)

	r.out.Println("")
	r.out.SummaryItem("Elapsed", formatDuration(report.TotalDuration()))

	failed := report.Count(model.OutcomeFailure)
	if failed == 0 {
		r.out.FinalSuccess("All %d tasks completed.", report.Total())
	} else {
		r.out.FinalFailure("%d of %d tasks failed.", failed, report.Total())
		r.out.Hint("details in %s", r.log.Path())
	}

	r.note(r.log.Info("run complete: %d succeeded, %d warned, %d failed (%s)",
		report.Count(model.OutcomeSuccess), report.Count(model.OutcomeWarning),
		failed, formatDuration(report.TotalDuration())))
}

func printBucket(out *output.Writer, label string, names []string, role output.BucketRole) {
	out.SummaryBucket(label, len(names), role)
	for _, name := range names {
		out.SummaryBucketItem(name, role)
	}
}

// runAction invokes the action and converts panics into errors so a
// misbehaving action still yields a bucketed outcome.
func runAction(ctx context.Context, action Action) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("action panicked: %v", p)
		}
	}()
	return action.Execute(ctx)
}

// note surfaces run log write errors as terminal warnings instead of
// failing the run.
func (r *Runner) note(err error) {
	if err != nil {
		r.out.Warning("%v", err)
	}
}

// formatDuration renders a duration rounded to 0.1s for human output.
func formatDuration(d time.Duration) string {
	return d.Round(100 * time.Millisecond).String()
}
