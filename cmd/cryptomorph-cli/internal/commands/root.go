package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the cryptomorph-cli command tree.
func NewRootCommand() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "cryptomorph-cli",
		Short: "Textbook RSA and hybrid file encryption",
		Long: `cryptomorph-cli generates RSA key pairs from first principles and uses them
to encrypt, decrypt, sign and verify files. Files are sealed in a hybrid envelope:
a random AES-256 key encrypted under RSA, followed by the IV and the AES-CBC ciphertext.`,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE:          runRoot,
	}

	env := NewEnvironment(rootCmd)

	for name, initCommands := range map[string]func(*cobra.Command, *Environment) error{
		"RSA": InitRSACommands,
		"AES": InitAESCommands,
		"key": InitKeyCommands,
	} {
		if err := initCommands(rootCmd, env); err != nil {
			return nil, fmt.Errorf("failed to initialize %s commands: %w", name, err)
		}
	}

	return rootCmd, nil
}

// runRoot only receives arguments that matched no subcommand.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	_ = cmd.Usage()

	msg := fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += fmt.Sprintf(", did you mean %s?", strings.Join(suggestions, " or "))
	}
	return errors.New(msg)
}
