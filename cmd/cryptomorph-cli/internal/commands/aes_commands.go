package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AESCommandHandler encapsulates logic for handling AES operations via CLI.
type AESCommandHandler struct {
	env *Environment
}

// NewAESCommandHandler creates an AESCommandHandler working on env.
func NewAESCommandHandler(env *Environment) *AESCommandHandler {
	return &AESCommandHandler{env: env}
}

// GenerateKeyCmd prints a fresh hex-encoded AES-256 key
func (commandHandler *AESCommandHandler) GenerateKeyCmd(cmd *cobra.Command, _ []string) error {
	hexKey, err := commandHandler.env.codec.GenerateSymmetricKey()
	if err != nil {
		return err
	}

	printf(cmd, "%s", hexKey)
	return nil
}

// EncryptCmd encrypts a file with a hex-encoded AES key
func (commandHandler *AESCommandHandler) EncryptCmd(cmd *cobra.Command, args []string) error {
	inputFile, hexKey, outputFile := args[0], args[1], args[2]

	if err := commandHandler.env.codec.EncryptFileSymmetric(inputFile, hexKey, outputFile); err != nil {
		return err
	}

	printf(cmd, "Encrypted data saved to %s", outputFile)
	return nil
}

// DecryptCmd decrypts a file with a hex-encoded AES key
func (commandHandler *AESCommandHandler) DecryptCmd(cmd *cobra.Command, args []string) error {
	inputFile, hexKey, outputFile := args[0], args[1], args[2]

	if err := commandHandler.env.codec.DecryptFileSymmetric(inputFile, hexKey, outputFile); err != nil {
		return err
	}

	printf(cmd, "Decrypted data saved to %s", outputFile)
	return nil
}

// InitAESCommands registers AES-related commands
func InitAESCommands(rootCmd *cobra.Command, env *Environment) error {
	if env == nil {
		return fmt.Errorf("environment cannot be nil")
	}
	handler := NewAESCommandHandler(env)

	rootCmd.AddCommand(&cobra.Command{
		Use:     "generate-symmetric-key",
		Aliases: []string{"gen_aes_key"},
		Short:   "Generate a random AES-256 key as hex",
		Args:    cobra.NoArgs,
		RunE:    handler.GenerateKeyCmd,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:     "symmetric-encrypt <in> <hexkey> <out>",
		Aliases: []string{"aes_encrypt"},
		Short:   "Encrypt a file with AES-256-CBC",
		Args:    cobra.ExactArgs(3),
		RunE:    handler.EncryptCmd,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:     "symmetric-decrypt <in> <hexkey> <out>",
		Aliases: []string{"aes_decrypt"},
		Short:   "Decrypt a file with AES-256-CBC",
		Args:    cobra.ExactArgs(3),
		RunE:    handler.DecryptCmd,
	})

	return nil
}
