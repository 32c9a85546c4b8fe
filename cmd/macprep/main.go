// Package main is the entry point for the macprep CLI.
package main

import (
	"os"

	"github.com/macprep/macprep/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
