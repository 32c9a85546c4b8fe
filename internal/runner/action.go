package runner

import (
	"context"
	"fmt"
)

// Action is one unit of provisioning work. Implementations shell out to
// external tools (Homebrew, osascript) or edit files; tests substitute fakes
// so the runner can be exercised without touching the machine.
type Action interface {
	Execute(ctx context.Context) error
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func(ctx context.Context) error

// Execute calls f.
func (f ActionFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// PreconditionError marks a task whose precondition is unmet (an optional
// resource unavailable upstream). The runner records it as a warning rather
// than a failure.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// Precondition creates a PreconditionError with formatting.
func Precondition(format string, args ...interface{}) *PreconditionError {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}
