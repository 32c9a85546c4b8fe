// Package cli provides command-line interface functionality for macprep.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/macprep/macprep/internal/errors"
	"github.com/macprep/macprep/internal/output"
)

// Version is set at build time.
var Version = "dev"

// stdin is the reader used for the confirmation prompt. Overridable in tests.
var stdin io.Reader = os.Stdin

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		fmt.Printf("macprep %s\n", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "apply":
		return cmdApply(cmdArgs, opts)
	case "plan":
		return cmdPlan(cmdArgs, opts)
	case "config":
		return cmdConfig(cmdArgs, opts)
	case "log":
		return cmdLog(cmdArgs)
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Hint("run 'macprep help' for usage")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	File    string // Manifest path override
	Yes     bool   // Skip the confirmation prompt
	Quiet   bool
	Verbose bool
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of stdlib flag package because:
// - Flags can appear anywhere in the argument list, not just before the command
// - Arguments after -- must be preserved verbatim
// - Custom error messages with usage hints are needed
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-y" || arg == "--yes":
			opts.Yes = true
			i++
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "-f" || arg == "--file":
			if i+1 >= len(args) {
				return nil, nil, errors.Config("--file requires a value")
			}
			opts.File = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--file="):
			opts.File = strings.TrimPrefix(arg, "--file=")
			i++
		case arg == "--":
			// Everything after -- is passed through
			remaining = append(remaining, args[i:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	// Apply verbosity settings to the shared output writer so every command
	// behaves consistently.
	out.SetQuiet(opts.Quiet)
	out.SetVerbose(opts.Verbose)

	return opts, remaining, nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && opts.Verbose {
		return errors.Config("--quiet and --verbose are mutually exclusive")
	}
	return nil
}

func printUsage() {
	w := output.New()

	w.Println("macprep %s - idempotent macOS provisioning", Version)
	w.Println("")
	w.Println("Usage:")
	w.Println("  macprep <command> [flags]")
	w.Println("")
	w.Println("Commands:")
	w.Println("  apply    Apply the manifest: install packages, patch configs, register login items")
	w.Println("  plan     Show what apply would do without changing anything")
	w.Println("  config   Print the resolved manifest and its source path")
	w.Println("  log      Print the run log path and the entries of the most recent run")
	w.Println("  version  Print the macprep version")
	w.Println("  help     Show this help")
	w.Println("")
	w.Println("Flags:")
	w.Println("  -f, --file <path>  Manifest path (default: discover macprep.yaml)")
	w.Println("  -y, --yes          Skip the confirmation prompt")
	w.Println("  -q, --quiet        Only print warnings, failures, and the summary")
	w.Println("  -v, --verbose      Print each task as it starts")
	w.Println("")
	w.Println("Re-running apply is safe: every task checks current state first and")
	w.Println("skips work that is already done.")
}
