package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yalmn/cryptomorph/internal/app"
	"github.com/yalmn/cryptomorph/internal/infrastructure/cryptography"
	"github.com/yalmn/cryptomorph/internal/pkg/config"
	"github.com/yalmn/cryptomorph/internal/pkg/logger"
)

// ErrInvalidSignature is returned by verify when the signature does not match the file
var ErrInvalidSignature = errors.New("signature is invalid")

// GlobalOptions are the persistent flags shared by every command
type GlobalOptions struct {
	LogLevel string
	LogFile  string
	Digest   string
	Rounds   int
	Timeout  time.Duration
}

// Environment carries what commands need at run time. It is populated once flags are parsed.
type Environment struct {
	Options GlobalOptions

	codec  *app.FileCodecService
	logger logger.Logger
}

// NewEnvironment registers the global flags on rootCmd and sets up the codec before any command runs.
func NewEnvironment(rootCmd *cobra.Command) *Environment {
	env := &Environment{}
	defaults := config.NewCryptoSettings()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&env.Options.LogLevel, "log-level", config.LogLevelWarning, "Log level (debug, info, warning, error)")
	flags.StringVar(&env.Options.LogFile, "log-file", "", "Write logs to this file instead of stderr")
	flags.StringVar(&env.Options.Digest, "digest", defaults.Digest, "Signature digest (sha256, sha3-256, blake2b-256)")
	flags.IntVar(&env.Options.Rounds, "rounds", defaults.ConfidenceRounds, "Miller-Rabin rounds per prime candidate")
	flags.DurationVar(&env.Options.Timeout, "timeout", 0, "Upper bound for key generation, 0 disables it")

	rootCmd.PersistentPreRunE = env.setup
	return env
}

func (env *Environment) setup(cmd *cobra.Command, _ []string) error {
	// arguments are valid by now, later failures are not usage errors
	cmd.SilenceUsage = true

	settings := &config.CryptoSettings{
		ConfidenceRounds: env.Options.Rounds,
		Digest:           env.Options.Digest,
		KeyGenTimeout:    env.Options.Timeout,
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	loggerInstance, err := setupLogger(env.Options.LogLevel, env.Options.LogFile)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	codec, err := newFileCodec(settings, loggerInstance)
	if err != nil {
		return err
	}

	env.codec = codec
	env.logger = loggerInstance
	return nil
}

// setupLogger builds a logger per invocation so that --log-file always takes effect
func setupLogger(level, filePath string) (logger.Logger, error) {
	loggerInstance, err := logger.New(config.NewLoggerSettings(level, filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return loggerInstance, nil
}

func newFileCodec(settings *config.CryptoSettings, log logger.Logger) (*app.FileCodecService, error) {
	rsaProcessor, err := cryptography.NewRSAProcessor(log,
		cryptography.WithConfidenceRounds(settings.ConfidenceRounds),
		cryptography.WithDigest(settings.Digest),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	aesProcessor, err := cryptography.NewAESProcessor(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES processor: %w", err)
	}

	hybridProcessor, err := cryptography.NewHybridProcessor(log, rsaProcessor, aesProcessor)
	if err != nil {
		return nil, fmt.Errorf("failed to create hybrid processor: %w", err)
	}

	return app.NewFileCodecService(rsaProcessor, aesProcessor, hybridProcessor, nil, log)
}

// keyGenContext bounds key generation by the --timeout flag
func (env *Environment) keyGenContext(parent context.Context) (context.Context, context.CancelFunc) {
	if env.Options.Timeout > 0 {
		return context.WithTimeout(parent, env.Options.Timeout)
	}
	return context.WithCancel(parent)
}

func printf(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}
