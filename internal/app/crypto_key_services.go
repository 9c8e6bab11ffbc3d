package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
	"github.com/yalmn/cryptomorph/internal/domain/keys"
	"github.com/yalmn/cryptomorph/internal/pkg/logger"
)

// ErrKeyTypeMismatch is returned when an operation needs the other half of a key pair
var ErrKeyTypeMismatch = errors.New("operation not permitted for this key type")

// KeyCatalog registers generated key pair files in the key catalog
type KeyCatalog struct {
	cryptoKeyRepo keys.CryptoKeyRepository
	logger        logger.Logger
}

// NewKeyCatalog creates a new KeyCatalog instance
func NewKeyCatalog(cryptoKeyRepo keys.CryptoKeyRepository, logger logger.Logger) (*KeyCatalog, error) {
	if cryptoKeyRepo == nil {
		return nil, fmt.Errorf("crypto key repository cannot be nil")
	}

	return &KeyCatalog{
		cryptoKeyRepo: cryptoKeyRepo,
		logger:        logger,
	}, nil
}

// Register records both files of a key pair under keyPairID; the private key meta comes first.
func (c *KeyCatalog) Register(ctx context.Context, keyPairID string, files *KeyPairFiles) ([]*keys.CryptoKeyMeta, error) {
	now := time.Now().UTC()

	entries := []struct {
		keyType string
		path    string
	}{
		{cryptoalg.KeyTypePrivate, files.PrivateKeyPath},
		{cryptoalg.KeyTypePublic, files.PublicKeyPath},
	}

	var keyMetas []*keys.CryptoKeyMeta
	for _, entry := range entries {
		meta := &keys.CryptoKeyMeta{
			ID:              uuid.NewString(),
			KeyPairID:       keyPairID,
			Algorithm:       cryptoalg.AlgorithmRSA,
			KeySize:         uint32(files.Bits),
			Type:            entry.keyType,
			FilePath:        entry.path,
			DateTimeCreated: now,
		}

		if err := c.cryptoKeyRepo.Create(ctx, meta); err != nil {
			return nil, fmt.Errorf("failed to register %s key: %w", entry.keyType, err)
		}
		keyMetas = append(keyMetas, meta)
	}

	c.logger.Info("Registered key pair ", keyPairID)
	return keyMetas, nil
}

// cryptoKeyGenerationService implements the CryptoKeyGenerationService interface
type cryptoKeyGenerationService struct {
	keyStore keys.KeyStore
	catalog  *KeyCatalog
	codec    *FileCodecService
	timeout  time.Duration
	logger   logger.Logger
}

// NewCryptoKeyGenerationService creates a new cryptoKeyGenerationService instance.
// A positive timeout bounds each key generation run.
func NewCryptoKeyGenerationService(
	keyStore keys.KeyStore,
	catalog *KeyCatalog,
	codec *FileCodecService,
	timeout time.Duration,
	logger logger.Logger,
) (keys.CryptoKeyGenerationService, error) {
	return &cryptoKeyGenerationService{
		keyStore: keyStore,
		catalog:  catalog,
		codec:    codec,
		timeout:  timeout,
		logger:   logger,
	}, nil
}

// GenerateKeyPair generates an RSA key pair into the key store and registers both files.
func (s *cryptoKeyGenerationService) GenerateKeyPair(ctx context.Context, keySize uint32) ([]*keys.CryptoKeyMeta, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	keyPairID := uuid.NewString()
	dir, err := s.keyStore.PairDir(keyPairID)
	if err != nil {
		return nil, err
	}

	files, err := s.codec.GenerateKeyPair(ctx, int(keySize), dir)
	if err != nil {
		s.discard(dir)
		return nil, err
	}

	keyMetas, err := s.catalog.Register(ctx, keyPairID, files)
	if err != nil {
		s.discard(dir)
		return nil, err
	}

	return keyMetas, nil
}

// discard removes the files of a pair that could not be completed
func (s *cryptoKeyGenerationService) discard(dir string) {
	for _, name := range []string{cryptoalg.PrivateKeyFileName, cryptoalg.PublicKeyFileName} {
		if err := s.keyStore.Delete(filepath.Join(dir, name)); err != nil {
			s.logger.Warn("failed to discard key file: ", err)
		}
	}
}

// cryptoKeyMetadataService implements the CryptoKeyMetadataService interface to manages cryptographic key metadata.
type cryptoKeyMetadataService struct {
	keyStore      keys.KeyStore
	cryptoKeyRepo keys.CryptoKeyRepository
	logger        logger.Logger
}

// NewCryptoKeyMetadataService creates a new cryptoKeyMetadataService instance
func NewCryptoKeyMetadataService(keyStore keys.KeyStore, cryptoKeyRepo keys.CryptoKeyRepository, logger logger.Logger) (keys.CryptoKeyMetadataService, error) {
	return &cryptoKeyMetadataService{
		keyStore:      keyStore,
		cryptoKeyRepo: cryptoKeyRepo,
		logger:        logger,
	}, nil
}

// List retrieves all cryptographic key metadata based on a query.
func (s *cryptoKeyMetadataService) List(ctx context.Context, query *keys.CryptoKeyQuery) ([]*keys.CryptoKeyMeta, error) {
	return s.cryptoKeyRepo.List(ctx, query)
}

// GetByID retrieves the metadata of a cryptographic key by its ID.
func (s *cryptoKeyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.CryptoKeyMeta, error) {
	return s.cryptoKeyRepo.GetByID(ctx, keyID)
}

// DeleteByID deletes a cryptographic key file and its metadata by its ID.
// A public key can only be deleted once the private key of its pair is gone.
func (s *cryptoKeyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	keyMeta, err := s.GetByID(ctx, keyID)
	if err != nil {
		return fmt.Errorf("failed to get key metadata: %w", err)
	}

	// Private keys are read together with their sibling public key file.
	if keyMeta.Type == cryptoalg.KeyTypePublic {
		query := keys.NewCryptoKeyQuery()
		query.KeyPairID = keyMeta.KeyPairID
		query.Type = cryptoalg.KeyTypePrivate

		privateKeys, err := s.cryptoKeyRepo.List(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to look up key pair: %w", err)
		}
		if len(privateKeys) > 0 {
			return fmt.Errorf("public key %s is still needed by private key %s: %w", keyMeta.ID, privateKeys[0].ID, ErrKeyTypeMismatch)
		}
	}

	if err := s.keyStore.Delete(keyMeta.FilePath); err != nil {
		return fmt.Errorf("failed to delete key file: %w", err)
	}

	if err := s.cryptoKeyRepo.DeleteByID(ctx, keyID); err != nil {
		return fmt.Errorf("failed to delete key from database: %w", err)
	}
	return nil
}

// cryptoKeyDownloadService implements the CryptoKeyDownloadService interface to handle the download of cryptographic keys.
type cryptoKeyDownloadService struct {
	keyStore      keys.KeyStore
	cryptoKeyRepo keys.CryptoKeyRepository
	logger        logger.Logger
}

// NewCryptoKeyDownloadService creates a new cryptoKeyDownloadService instance
func NewCryptoKeyDownloadService(keyStore keys.KeyStore, cryptoKeyRepo keys.CryptoKeyRepository, logger logger.Logger) (keys.CryptoKeyDownloadService, error) {
	return &cryptoKeyDownloadService{
		keyStore:      keyStore,
		cryptoKeyRepo: cryptoKeyRepo,
		logger:        logger,
	}, nil
}

// DownloadByID returns the PEM content of a public key.
func (s *cryptoKeyDownloadService) DownloadByID(ctx context.Context, keyID string) ([]byte, error) {
	keyMeta, err := s.cryptoKeyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if keyMeta.Type != cryptoalg.KeyTypePublic {
		return nil, fmt.Errorf("download of %s key: %w", keyMeta.Type, ErrKeyTypeMismatch)
	}

	return s.keyStore.Read(keyMeta.FilePath)
}

// cryptoKeyOperationService implements the CryptoKeyOperationService interface on catalog keys
type cryptoKeyOperationService struct {
	cryptoKeyRepo keys.CryptoKeyRepository
	rsa           cryptoalg.RSAProcessor
	hybrid        cryptoalg.HybridProcessor
	logger        logger.Logger
}

// NewCryptoKeyOperationService creates a new cryptoKeyOperationService instance
func NewCryptoKeyOperationService(
	cryptoKeyRepo keys.CryptoKeyRepository,
	rsa cryptoalg.RSAProcessor,
	hybrid cryptoalg.HybridProcessor,
	logger logger.Logger,
) (keys.CryptoKeyOperationService, error) {
	return &cryptoKeyOperationService{
		cryptoKeyRepo: cryptoKeyRepo,
		rsa:           rsa,
		hybrid:        hybrid,
		logger:        logger,
	}, nil
}

// Encrypt seals data for the public key keyID.
func (s *cryptoKeyOperationService) Encrypt(ctx context.Context, keyID string, data []byte) ([]byte, error) {
	publicKey, err := s.publicKey(ctx, keyID)
	if err != nil {
		return nil, err
	}
	return s.hybrid.Encrypt(data, publicKey)
}

// Decrypt opens an envelope with the private key keyID.
func (s *cryptoKeyOperationService) Decrypt(ctx context.Context, keyID string, envelope []byte) ([]byte, error) {
	privateKey, err := s.privateKey(ctx, keyID)
	if err != nil {
		return nil, err
	}
	return s.hybrid.Decrypt(envelope, privateKey)
}

// Sign signs data with the private key keyID.
func (s *cryptoKeyOperationService) Sign(ctx context.Context, keyID string, data []byte) ([]byte, error) {
	privateKey, err := s.privateKey(ctx, keyID)
	if err != nil {
		return nil, err
	}
	return s.rsa.Sign(data, privateKey)
}

// Verify checks signature over data with the public key keyID.
func (s *cryptoKeyOperationService) Verify(ctx context.Context, keyID string, data, signature []byte) (bool, error) {
	publicKey, err := s.publicKey(ctx, keyID)
	if err != nil {
		return false, err
	}
	return s.rsa.Verify(data, signature, publicKey)
}

func (s *cryptoKeyOperationService) keyMeta(ctx context.Context, keyID, keyType string) (*keys.CryptoKeyMeta, error) {
	keyMeta, err := s.cryptoKeyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if keyMeta.Type != keyType {
		return nil, fmt.Errorf("expected %s key, got %s: %w", keyType, keyMeta.Type, ErrKeyTypeMismatch)
	}
	return keyMeta, nil
}

func (s *cryptoKeyOperationService) publicKey(ctx context.Context, keyID string) (*cryptoalg.PublicKey, error) {
	keyMeta, err := s.keyMeta(ctx, keyID, cryptoalg.KeyTypePublic)
	if err != nil {
		return nil, err
	}
	return s.rsa.ReadPublicKey(keyMeta.FilePath)
}

func (s *cryptoKeyOperationService) privateKey(ctx context.Context, keyID string) (*cryptoalg.PrivateKey, error) {
	keyMeta, err := s.keyMeta(ctx, keyID, cryptoalg.KeyTypePrivate)
	if err != nil {
		return nil, err
	}
	return s.rsa.ReadPrivateKey(keyMeta.FilePath)
}
