// Package errors provides structured error types and exit codes for macprep.
package errors

import (
	"fmt"
)

// Exit codes. Task failures never surface here: the runner converts every
// task-boundary error into an outcome, so these apply only to errors raised
// before or outside the task loop.
const (
	ExitSuccess          = 0 // Success (including declined confirmation and failed tasks)
	ExitRuntimeError     = 1 // Runtime error (run log unopenable, etc.)
	ExitConfigError      = 2 // Manifest error (invalid manifest, validation failure)
	ExitEnvironmentError = 3 // Environment error (home directory unresolvable, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindEnvironment
)

// PrepError is the base error type for macprep.
type PrepError struct {
	Kind    ErrorKind
	Message string
}

func (e *PrepError) Error() string {
	return e.Message
}

// ExitCode returns the appropriate exit code for this error.
func (e *PrepError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation, KindNotFound:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// Config creates a new manifest error.
func Config(message string) *PrepError {
	return &PrepError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new manifest error with formatting.
func Configf(format string, args ...interface{}) *PrepError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *PrepError {
	return &PrepError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *PrepError {
	return Environment(fmt.Sprintf(format, args...))
}

// NotFound creates a not found error.
func NotFound(what, name string) *PrepError {
	return &PrepError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if pe, ok := err.(*PrepError); ok {
		return pe.ExitCode()
	}
	return ExitRuntimeError
}
