// Package model provides shared data types used across multiple internal packages.
// This package exists so that runner, cli, and runlog can share report types
// without importing each other.
package model

import (
	"time"
)

// Outcome classifies how a single task ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeWarning
	OutcomeFailure
)

// String returns the log level name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWarning:
		return "WARNING"
	case OutcomeFailure:
		return "FAILURE"
	default:
		return "SUCCESS"
	}
}

// TaskResult tracks the execution result of a single task.
type TaskResult struct {
	Name     string
	Outcome  Outcome
	Duration time.Duration
	Err      error
}

// Report accumulates task results over one run. It is an explicit value
// threaded through the runner rather than ambient process state, so a single
// run's results can be built up and rendered without hidden globals.
// Bucket order is recording order.
type Report struct {
	results       []TaskResult
	totalDuration time.Duration
}

// Add records a task result and folds its duration into the total.
func (r *Report) Add(res TaskResult) {
	r.results = append(r.results, res)
	r.totalDuration += res.Duration
}

// Results returns all recorded results in recording order.
func (r *Report) Results() []TaskResult {
	return r.results
}

// Succeeded returns the names of succeeded tasks in recording order.
func (r *Report) Succeeded() []string {
	return r.names(OutcomeSuccess)
}

// Warned returns the names of warned tasks in recording order.
func (r *Report) Warned() []string {
	return r.names(OutcomeWarning)
}

// Failed returns the names of failed tasks in recording order.
func (r *Report) Failed() []string {
	return r.names(OutcomeFailure)
}

func (r *Report) names(o Outcome) []string {
	names := []string{}
	for _, res := range r.results {
		if res.Outcome == o {
			names = append(names, res.Name)
		}
	}
	return names
}

// Count returns the number of results with the given outcome.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Total returns the number of recorded results.
func (r *Report) Total() int {
	return len(r.results)
}

// TotalDuration returns the cumulative elapsed time across all tasks.
func (r *Report) TotalDuration() time.Duration {
	return r.totalDuration
}
