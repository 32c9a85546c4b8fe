package model

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeSuccess, "SUCCESS"},
		{OutcomeWarning, "WARNING"},
		{OutcomeFailure, "FAILURE"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}

func TestReport_BucketsPreserveRecordingOrder(t *testing.T) {
	var r Report
	r.Add(TaskResult{Name: "t1", Outcome: OutcomeFailure, Err: errors.New("boom")})
	r.Add(TaskResult{Name: "t2", Outcome: OutcomeSuccess})
	r.Add(TaskResult{Name: "t3", Outcome: OutcomeWarning})
	r.Add(TaskResult{Name: "t4", Outcome: OutcomeSuccess})

	if got := r.Succeeded(); !reflect.DeepEqual(got, []string{"t2", "t4"}) {
		t.Errorf("Succeeded() = %v", got)
	}
	if got := r.Warned(); !reflect.DeepEqual(got, []string{"t3"}) {
		t.Errorf("Warned() = %v", got)
	}
	if got := r.Failed(); !reflect.DeepEqual(got, []string{"t1"}) {
		t.Errorf("Failed() = %v", got)
	}
}

func TestReport_EmptyBucketsAreEmptyNotNil(t *testing.T) {
	var r Report

	// Rendered summaries list empty buckets explicitly, so accessors must
	// return empty slices rather than nil.
	for name, got := range map[string][]string{
		"Succeeded": r.Succeeded(),
		"Warned":    r.Warned(),
		"Failed":    r.Failed(),
	} {
		if got == nil {
			t.Errorf("%s() = nil, want empty slice", name)
		}
		if len(got) != 0 {
			t.Errorf("%s() = %v, want empty", name, got)
		}
	}
}

func TestReport_CountsAndDuration(t *testing.T) {
	var r Report
	r.Add(TaskResult{Name: "a", Outcome: OutcomeSuccess, Duration: 2 * time.Second})
	r.Add(TaskResult{Name: "b", Outcome: OutcomeFailure, Duration: 3 * time.Second})

	if got := r.Count(OutcomeSuccess); got != 1 {
		t.Errorf("Count(OutcomeSuccess) = %d, want 1", got)
	}
	if got := r.Count(OutcomeWarning); got != 0 {
		t.Errorf("Count(OutcomeWarning) = %d, want 0", got)
	}
	if got := r.Total(); got != 2 {
		t.Errorf("Total() = %d, want 2", got)
	}
	if got := r.TotalDuration(); got != 5*time.Second {
		t.Errorf("TotalDuration() = %v, want 5s", got)
	}
}
