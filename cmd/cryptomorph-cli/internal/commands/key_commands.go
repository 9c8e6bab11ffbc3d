package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yalmn/cryptomorph/internal/app"
	"github.com/yalmn/cryptomorph/internal/domain/keys"
	"github.com/yalmn/cryptomorph/internal/infrastructure/persistence"
	"github.com/yalmn/cryptomorph/internal/pkg/config"
	"github.com/yalmn/cryptomorph/internal/pkg/logger"
)

// KeyCommandHandler lists key pairs recorded in a local catalog
type KeyCommandHandler struct {
	env *Environment
}

// NewKeyCommandHandler creates a KeyCommandHandler working on env.
func NewKeyCommandHandler(env *Environment) *KeyCommandHandler {
	return &KeyCommandHandler{env: env}
}

// withCatalog opens the SQLite catalog at path for the duration of fn
func withCatalog(path string, log logger.Logger, fn func(repo keys.CryptoKeyRepository) error) error {
	db, err := persistence.NewCatalogDB(config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  path,
	})
	if err != nil {
		return fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			log.Warn("failed to close catalog: ", err)
		}
	}()

	repo, err := persistence.NewGormCryptoKeyRepository(db, log)
	if err != nil {
		return err
	}
	return fn(repo)
}

func registerKeyPair(ctx context.Context, catalogPath string, files *app.KeyPairFiles, log logger.Logger) (string, error) {
	privateKeyPath, err := filepath.Abs(files.PrivateKeyPath)
	if err != nil {
		return "", err
	}
	publicKeyPath, err := filepath.Abs(files.PublicKeyPath)
	if err != nil {
		return "", err
	}

	keyPairID := uuid.NewString()
	err = withCatalog(catalogPath, log, func(repo keys.CryptoKeyRepository) error {
		catalog, err := app.NewKeyCatalog(repo, log)
		if err != nil {
			return err
		}
		_, err = catalog.Register(ctx, keyPairID, &app.KeyPairFiles{
			Bits:           files.Bits,
			PrivateKeyPath: privateKeyPath,
			PublicKeyPath:  publicKeyPath,
		})
		return err
	})
	if err != nil {
		return "", err
	}

	return keyPairID, nil
}

// ListKeysCmd prints the catalog entries, newest first
func (commandHandler *KeyCommandHandler) ListKeysCmd(cmd *cobra.Command, _ []string) error {
	catalogPath, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return fmt.Errorf("invalid catalog flag: %w", err)
	}

	return withCatalog(catalogPath, commandHandler.env.logger, func(repo keys.CryptoKeyRepository) error {
		keyMetas, err := repo.List(cmd.Context(), keys.NewCryptoKeyQuery())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKEY PAIR\tTYPE\tBITS\tCREATED\tPATH")
		for _, meta := range keyMetas {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				meta.ID, meta.KeyPairID, meta.Type, meta.KeySize,
				meta.DateTimeCreated.Format(time.RFC3339), meta.FilePath)
		}
		return w.Flush()
	})
}

// InitKeyCommands registers catalog commands
func InitKeyCommands(rootCmd *cobra.Command, env *Environment) error {
	if env == nil {
		return fmt.Errorf("environment cannot be nil")
	}
	handler := NewKeyCommandHandler(env)

	listKeysCmd := &cobra.Command{
		Use:   "list-keys",
		Short: "List key pairs recorded in a catalog",
		Args:  cobra.NoArgs,
		RunE:  handler.ListKeysCmd,
	}
	listKeysCmd.Flags().String("catalog", "", "SQLite file recording key pair metadata")
	if err := listKeysCmd.MarkFlagRequired("catalog"); err != nil {
		return err
	}
	rootCmd.AddCommand(listKeysCmd)

	return nil
}
