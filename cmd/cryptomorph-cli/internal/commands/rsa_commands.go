package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
)

// RSACommandHandler encapsulates logic for handling RSA operations via CLI.
type RSACommandHandler struct {
	env *Environment
}

// NewRSACommandHandler creates an RSACommandHandler working on env.
func NewRSACommandHandler(env *Environment) *RSACommandHandler {
	return &RSACommandHandler{env: env}
}

// GenerateKeyPairCmd generates an RSA key pair and writes both key files into the output directory
func (commandHandler *RSACommandHandler) GenerateKeyPairCmd(cmd *cobra.Command, args []string) error {
	bits, err := parseBits(args[0])
	if err != nil {
		return err
	}
	outDir := args[1]

	ctx, cancel := commandHandler.env.keyGenContext(cmd.Context())
	defer cancel()

	files, err := commandHandler.env.codec.GenerateKeyPair(ctx, bits, outDir)
	if err != nil {
		return err
	}

	catalogPath, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return fmt.Errorf("invalid catalog flag: %w", err)
	}
	if catalogPath != "" {
		keyPairID, err := registerKeyPair(ctx, catalogPath, files, commandHandler.env.logger)
		if err != nil {
			return err
		}
		printf(cmd, "Registered key pair %s in %s", keyPairID, catalogPath)
	}

	printf(cmd, "Private key saved to %s", files.PrivateKeyPath)
	printf(cmd, "Public key saved to %s", files.PublicKeyPath)
	return nil
}

func parseBits(arg string) (int, error) {
	bits, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("bit length %q is not a number: %w", arg, cryptoalg.ErrMalformedInput)
	}
	return bits, nil
}

// HybridEncryptCmd seals a file for a public key
func (commandHandler *RSACommandHandler) HybridEncryptCmd(cmd *cobra.Command, args []string) error {
	inputFile, publicKeyPath, outputFile := args[0], args[1], args[2]

	if err := commandHandler.env.codec.EncryptFile(inputFile, publicKeyPath, outputFile); err != nil {
		return err
	}

	printf(cmd, "Encrypted data saved to %s", outputFile)
	return nil
}

// HybridDecryptCmd opens a hybrid envelope with a private key
func (commandHandler *RSACommandHandler) HybridDecryptCmd(cmd *cobra.Command, args []string) error {
	inputFile, privateKeyPath, outputFile := args[0], args[1], args[2]

	if err := commandHandler.env.codec.DecryptFile(inputFile, privateKeyPath, outputFile); err != nil {
		return err
	}

	printf(cmd, "Decrypted data saved to %s", outputFile)
	return nil
}

// SignCmd signs a file and saves the signature
func (commandHandler *RSACommandHandler) SignCmd(cmd *cobra.Command, args []string) error {
	inputFile, privateKeyPath, signatureFile := args[0], args[1], args[2]

	if err := commandHandler.env.codec.SignFile(inputFile, privateKeyPath, signatureFile); err != nil {
		return err
	}

	printf(cmd, "Signature saved to %s", signatureFile)
	return nil
}

// VerifyCmd checks a signature against a file
func (commandHandler *RSACommandHandler) VerifyCmd(cmd *cobra.Command, args []string) error {
	inputFile, publicKeyPath, signatureFile := args[0], args[1], args[2]

	valid, err := commandHandler.env.codec.VerifyFile(inputFile, publicKeyPath, signatureFile)
	if err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("%s: %w", inputFile, ErrInvalidSignature)
	}

	printf(cmd, "Signature is valid")
	return nil
}

// InitRSACommands registers RSA-related commands
func InitRSACommands(rootCmd *cobra.Command, env *Environment) error {
	if env == nil {
		return fmt.Errorf("environment cannot be nil")
	}
	handler := NewRSACommandHandler(env)

	generateKeyPairCmd := &cobra.Command{
		Use:     "generate-keypair <bits> <outdir>",
		Aliases: []string{"Rsa_Key_Gen"},
		Short:   "Generate an RSA key pair",
		Args:    cobra.ExactArgs(2),
		RunE:    handler.GenerateKeyPairCmd,
	}
	generateKeyPairCmd.Flags().String("catalog", "", "SQLite file recording the key pair metadata")
	rootCmd.AddCommand(generateKeyPairCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:     "hybrid-encrypt <in> <pub> <out>",
		Aliases: []string{"rsa_encrypt"},
		Short:   "Encrypt a file for an RSA public key",
		Args:    cobra.ExactArgs(3),
		RunE:    handler.HybridEncryptCmd,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:     "hybrid-decrypt <in> <priv> <out>",
		Aliases: []string{"rsa_decrypt"},
		Short:   "Decrypt a file with an RSA private key",
		Args:    cobra.ExactArgs(3),
		RunE:    handler.HybridDecryptCmd,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:     "sign <in> <priv> <sig>",
		Aliases: []string{"rsa_sign"},
		Short:   "Sign a file with an RSA private key",
		Args:    cobra.ExactArgs(3),
		RunE:    handler.SignCmd,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:     "verify <in> <pub> <sig>",
		Aliases: []string{"rsa_verify"},
		Short:   "Verify a file signature with an RSA public key",
		Args:    cobra.ExactArgs(3),
		RunE:    handler.VerifyCmd,
	})

	return nil
}
