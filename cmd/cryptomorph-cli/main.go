// Package main is the entry point for the cryptomorph-cli application.
// It builds the command tree and executes it, exiting non-zero on any error.
package main

import (
	"fmt"
	"os"

	"github.com/yalmn/cryptomorph/cmd/cryptomorph-cli/internal/commands"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd, err := commands.NewRootCommand()
	if err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	return rootCmd.Execute()
}
