// cmd/cryptomorph-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	v1 "github.com/yalmn/cryptomorph/internal/api/rest/v1"
	"github.com/yalmn/cryptomorph/internal/app"
	"github.com/yalmn/cryptomorph/internal/domain/keys"
	"github.com/yalmn/cryptomorph/internal/infrastructure/connector"
	"github.com/yalmn/cryptomorph/internal/infrastructure/cryptography"
	"github.com/yalmn/cryptomorph/internal/infrastructure/persistence"
	"github.com/yalmn/cryptomorph/internal/pkg/config"
	"github.com/yalmn/cryptomorph/internal/pkg/logger"
	"github.com/yalmn/cryptomorph/internal/pkg/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// CONFIG_PATH is optional, defaults and CRYPTOMORPH_* variables suffice
	restConfig, err := config.InitializeRestConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Warn("failed to close database: ", err)
		}
	}()

	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	services *appServices
}

type appServices struct {
	cryptoKeyGeneration keys.CryptoKeyGenerationService
	cryptoKeyDownload   keys.CryptoKeyDownloadService
	cryptoKeyMetadata   keys.CryptoKeyMetadataService
	cryptoKeyOperation  keys.CryptoKeyOperationService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// created first, the default SQLite catalog lives inside it
	keyStore, err := connector.NewLocalKeyStore(cfg.KeyDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key store: %w", err)
	}

	db, err := persistence.NewCatalogDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open key catalog: %w", err)
	}
	log.Info("Database migrations completed successfully")

	cryptoKeyRepo, err := persistence.NewGormCryptoKeyRepository(db, log)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, fmt.Errorf("failed to create crypto key repository: %w", err)
	}

	recorder, err := metrics.NewRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	services, err := initializeApplicationServices(cfg, keyStore, cryptoKeyRepo, recorder, log)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		db:       db,
		services: services,
	}, nil
}

// initializeApplicationServices sets up the processors and the services built on them
func initializeApplicationServices(
	cfg *config.RestConfig,
	keyStore keys.KeyStore,
	keyRepo keys.CryptoKeyRepository,
	recorder *metrics.Recorder,
	log logger.Logger,
) (*appServices, error) {
	rsaProcessor, err := cryptography.NewRSAProcessor(log,
		cryptography.WithConfidenceRounds(cfg.Crypto.ConfidenceRounds),
		cryptography.WithDigest(cfg.Crypto.Digest),
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
	log.Info("Cryptographic processors initialized successfully")

	codec, err := app.NewFileCodecService(rsaProcessor, aesProcessor, hybridProcessor, recorder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create file codec: %w", err)
	}

	catalog, err := app.NewKeyCatalog(keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key catalog: %w", err)
	}

	generationService, err := app.NewCryptoKeyGenerationService(keyStore, catalog, codec, cfg.Crypto.KeyGenTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key generation service: %w", err)
	}

	downloadService, err := app.NewCryptoKeyDownloadService(keyStore, keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key download service: %w", err)
	}

	metadataService, err := app.NewCryptoKeyMetadataService(keyStore, keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key metadata service: %w", err)
	}

	operationService, err := app.NewCryptoKeyOperationService(keyRepo, rsaProcessor, hybridProcessor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key operation service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		cryptoKeyGeneration: generationService,
		cryptoKeyDownload:   downloadService,
		cryptoKeyMetadata:   metadataService,
		cryptoKeyOperation:  operationService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	v1.SetupRoutes(r,
		deps.services.cryptoKeyGeneration,
		deps.services.cryptoKeyDownload,
		deps.services.cryptoKeyMetadata,
		deps.services.cryptoKeyOperation,
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
