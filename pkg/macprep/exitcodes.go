// Package macprep provides public constants and utilities for external tools
// integrating with macprep.
package macprep

// Exit codes returned by the macprep CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully. A declined
	// confirmation prompt and a run containing failed tasks both exit with
	// this code; aggregate task failure is reported only via the summary
	// and the run log.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure outside the task loop
	// (run log unopenable, etc.).
	ExitFailure = 1

	// ExitConfigError indicates a manifest error (missing, invalid, or
	// failed validation) detected before any side effect.
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (home directory
	// unresolvable, etc.).
	ExitEnvError = 3
)
