//go:build integration
// +build integration

package persistence

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yalmn/cryptomorph/internal/domain/keys"
	"github.com/yalmn/cryptomorph/internal/pkg/config"
	"github.com/yalmn/cryptomorph/internal/pkg/testutil"
)

// Test constants
const (
	TestKeySize512  = 512
	TestKeySize2048 = 2048

	TestKeyTypePublic  = "public"
	TestKeyTypePrivate = "private"

	TestAlgorithmRSA = "RSA"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB            *gorm.DB
	CryptoKeyRepo keys.CryptoKeyRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  sqliteInMemoryDSN,
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewCatalogDB(settings)
	require.NoError(t, err, "Failed to open key catalog")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	cryptoKeyRepo, err := NewGormCryptoKeyRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create crypto key repository")

	return &TestContext{
		DB:            db,
		CryptoKeyRepo: cryptoKeyRepo,
	}
}

// CreateTestKey creates a test crypto key with default values
func CreateTestKey(t *testing.T) *keys.CryptoKeyMeta {
	t.Helper()

	return CreateTestKeyWithOptions(t, uuid.NewString(), TestKeyTypePublic, TestKeySize2048)
}

// CreateTestKeyWithOptions creates a test key with custom options
func CreateTestKeyWithOptions(t *testing.T, keyPairID, keyType string, keySize int) *keys.CryptoKeyMeta {
	t.Helper()

	fileName := "rsa_public.key"
	if keyType == TestKeyTypePrivate {
		fileName = "rsa_private.key"
	}

	return &keys.CryptoKeyMeta{
		ID:              uuid.NewString(),
		KeyPairID:       keyPairID,
		Type:            keyType,
		Algorithm:       TestAlgorithmRSA,
		KeySize:         uint32(keySize),
		FilePath:        filepath.Join("keys", keyPairID, fileName),
		DateTimeCreated: time.Now(),
	}
}
