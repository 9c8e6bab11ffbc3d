//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yalmn/cryptomorph/internal/domain/keys"
	"github.com/yalmn/cryptomorph/internal/infrastructure/persistence/models"
	"github.com/yalmn/cryptomorph/internal/pkg/config"
)

func TestCryptoKeySqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	key := CreateTestKeyWithOptions(t, uuid.NewString(), TestKeyTypePublic, TestKeySize512)

	err := ctx.CryptoKeyRepo.Create(context.Background(), key)
	require.NoError(t, err)

	var created models.CryptoKeyModel
	err = ctx.DB.First(&created, "id = ?", key.ID).Error
	require.NoError(t, err)
	assert.Equal(t, key.ID, created.ID)
	assert.Equal(t, key.Type, created.Type)
	assert.Equal(t, key.FilePath, created.FilePath)
}

func TestCryptoKeySqliteRepository_GetByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	key := CreateTestKeyWithOptions(t, uuid.NewString(), TestKeyTypePrivate, TestKeySize2048)
	require.NoError(t, ctx.CryptoKeyRepo.Create(context.Background(), key))

	fetchedKey, err := ctx.CryptoKeyRepo.GetByID(context.Background(), key.ID)
	require.NoError(t, err)
	assert.Equal(t, key.ID, fetchedKey.ID)
	assert.Equal(t, key.KeyPairID, fetchedKey.KeyPairID)
	assert.Equal(t, key.KeySize, fetchedKey.KeySize)
}

func TestCryptoKeySqliteRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	keyPairID := uuid.NewString()
	require.NoError(t, ctx.CryptoKeyRepo.Create(context.Background(), CreateTestKeyWithOptions(t, keyPairID, TestKeyTypePrivate, TestKeySize2048)))
	require.NoError(t, ctx.CryptoKeyRepo.Create(context.Background(), CreateTestKeyWithOptions(t, keyPairID, TestKeyTypePublic, TestKeySize2048)))

	cryptoKeys, err := ctx.CryptoKeyRepo.List(context.Background(), &keys.CryptoKeyQuery{})
	require.NoError(t, err)
	assert.Len(t, cryptoKeys, 2)

	cryptoKeys, err = ctx.CryptoKeyRepo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, cryptoKeys, 2)
}

func TestCryptoKeySqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	key := CreateTestKey(t)
	require.NoError(t, ctx.CryptoKeyRepo.Create(context.Background(), key))

	key.FilePath = "moved/rsa_public.key"
	require.NoError(t, ctx.CryptoKeyRepo.UpdateByID(context.Background(), key))

	updatedKey, err := ctx.CryptoKeyRepo.GetByID(context.Background(), key.ID)
	require.NoError(t, err)
	assert.Equal(t, "moved/rsa_public.key", updatedKey.FilePath)
}

func TestCryptoKeySqliteRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	key := CreateTestKey(t)
	require.NoError(t, ctx.CryptoKeyRepo.Create(context.Background(), key))
	require.NoError(t, ctx.CryptoKeyRepo.DeleteByID(context.Background(), key.ID))

	var deleted models.CryptoKeyModel
	err := ctx.DB.First(&deleted, "id = ?", key.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = ctx.CryptoKeyRepo.DeleteByID(context.Background(), key.ID)
	assert.ErrorIs(t, err, keys.ErrKeyNotFound)
}

func TestCryptoKeyRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	key, err := ctx.CryptoKeyRepo.GetByID(context.Background(), uuid.NewString())
	assert.Nil(t, key)
	assert.ErrorIs(t, err, keys.ErrKeyNotFound)
}

func TestCryptoKeyRepository_Create_ValidationError(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	err := ctx.CryptoKeyRepo.Create(context.Background(), &keys.CryptoKeyMeta{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestCryptoKeyRepository_List_InvalidQuery(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.CryptoKeyRepo.List(context.Background(), &keys.CryptoKeyQuery{SortBy: "user_id"})
	assert.Error(t, err)
}

func TestCryptoKeySqliteRepository_List_WithFiltersAndSorting(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	firstPair := uuid.NewString()
	key1 := CreateTestKeyWithOptions(t, firstPair, TestKeyTypePrivate, TestKeySize2048)
	key1.DateTimeCreated = time.Now().Add(-2 * time.Hour)

	key2 := CreateTestKeyWithOptions(t, uuid.NewString(), TestKeyTypePublic, TestKeySize512)
	key2.DateTimeCreated = time.Now().Add(-1 * time.Hour)

	require.NoError(t, ctx.CryptoKeyRepo.Create(context.Background(), key1))
	require.NoError(t, ctx.CryptoKeyRepo.Create(context.Background(), key2))

	// filter by type
	privateKeys, err := ctx.CryptoKeyRepo.List(context.Background(), &keys.CryptoKeyQuery{Type: TestKeyTypePrivate})
	require.NoError(t, err)
	require.Len(t, privateKeys, 1)
	assert.Equal(t, key1.ID, privateKeys[0].ID)

	// filter by key pair
	pairKeys, err := ctx.CryptoKeyRepo.List(context.Background(), &keys.CryptoKeyQuery{KeyPairID: firstPair})
	require.NoError(t, err)
	require.Len(t, pairKeys, 1)
	assert.Equal(t, firstPair, pairKeys[0].KeyPairID)

	// sorting
	sortedKeys, err := ctx.CryptoKeyRepo.List(context.Background(), keys.NewCryptoKeyQuery())
	require.NoError(t, err)
	require.Len(t, sortedKeys, 2)
	assert.True(t, sortedKeys[0].DateTimeCreated.After(sortedKeys[1].DateTimeCreated))

	// pagination
	pagedKeys, err := ctx.CryptoKeyRepo.List(context.Background(), &keys.CryptoKeyQuery{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, pagedKeys, 1)
}
