//go:build integration
// +build integration

package app

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/yalmn/cryptomorph/internal/domain/keys"
	"github.com/yalmn/cryptomorph/internal/infrastructure/connector"
	"github.com/yalmn/cryptomorph/internal/infrastructure/cryptography"
	"github.com/yalmn/cryptomorph/internal/infrastructure/persistence"
	"github.com/yalmn/cryptomorph/internal/pkg/metrics"
	"github.com/yalmn/cryptomorph/internal/pkg/testutil"
)

// TestKeySize is the modulus size used by catalog tests
const TestKeySize = 512

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	KeyStoreRoot string

	CryptoKeyGenerationService keys.CryptoKeyGenerationService
	CryptoKeyMetadataService   keys.CryptoKeyMetadataService
	CryptoKeyDownloadService   keys.CryptoKeyDownloadService
	CryptoKeyOperationService  keys.CryptoKeyOperationService

	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	root := t.TempDir()
	keyStore, err := connector.NewLocalKeyStore(root, logger)
	require.NoError(t, err, "Failed to create key store")

	rsaProcessor, err := cryptography.NewRSAProcessor(logger, cryptography.WithRandom(testutil.NewSeededReader(time.Now().UnixNano())))
	require.NoError(t, err, "Failed to create RSA processor")

	aesProcessor, err := cryptography.NewAESProcessor(logger)
	require.NoError(t, err, "Failed to create AES processor")

	hybridProcessor, err := cryptography.NewHybridProcessor(logger, rsaProcessor, aesProcessor)
	require.NoError(t, err, "Failed to create hybrid processor")

	recorder, err := metrics.NewRecorder(prometheus.NewRegistry())
	require.NoError(t, err, "Failed to create metrics recorder")

	codec, err := NewFileCodecService(rsaProcessor, aesProcessor, hybridProcessor, recorder, logger)
	require.NoError(t, err, "Failed to create FileCodecService")

	catalog, err := NewKeyCatalog(dbContext.CryptoKeyRepo, logger)
	require.NoError(t, err, "Failed to create KeyCatalog")

	generationService, err := NewCryptoKeyGenerationService(keyStore, catalog, codec, time.Minute, logger)
	require.NoError(t, err, "Failed to create CryptoKeyGenerationService")

	metadataService, err := NewCryptoKeyMetadataService(keyStore, dbContext.CryptoKeyRepo, logger)
	require.NoError(t, err, "Failed to create CryptoKeyMetadataService")

	downloadService, err := NewCryptoKeyDownloadService(keyStore, dbContext.CryptoKeyRepo, logger)
	require.NoError(t, err, "Failed to create CryptoKeyDownloadService")

	operationService, err := NewCryptoKeyOperationService(dbContext.CryptoKeyRepo, rsaProcessor, hybridProcessor, logger)
	require.NoError(t, err, "Failed to create CryptoKeyOperationService")

	return &TestServices{
		KeyStoreRoot:               root,
		CryptoKeyGenerationService: generationService,
		CryptoKeyMetadataService:   metadataService,
		CryptoKeyDownloadService:   downloadService,
		CryptoKeyOperationService:  operationService,
		DBContext:                  dbContext,
	}
}
