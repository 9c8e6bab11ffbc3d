package keys

import (
	"context"
)

// CryptoKeyGenerationService defines methods for creating key pairs in the key store.
type CryptoKeyGenerationService interface {
	// GenerateKeyPair generates an RSA key pair of keySize bits, writes both key files
	// and registers their metadata. The private key meta comes first.
	GenerateKeyPair(ctx context.Context, keySize uint32) ([]*CryptoKeyMeta, error)
}

// CryptoKeyMetadataService defines methods for managing cryptographic key metadata and deleting keys.
type CryptoKeyMetadataService interface {
	// List retrieves all cryptographic keys metadata considering a query filter when set.
	// It returns a slice of CryptoKeyMeta and any error encountered during the retrieval process.
	List(ctx context.Context, query *CryptoKeyQuery) ([]*CryptoKeyMeta, error)

	// GetByID retrieves the metadata of a cryptographic key by its unique ID.
	// It returns the CryptoKeyMeta and any error encountered during the retrieval process.
	GetByID(ctx context.Context, keyID string) (*CryptoKeyMeta, error)

	// DeleteByID deletes a cryptographic key file and its associated metadata by ID.
	// It returns any error encountered during the deletion process.
	DeleteByID(ctx context.Context, keyID string) error
}

// CryptoKeyDownloadService defines methods for downloading cryptographic keys.
type CryptoKeyDownloadService interface {
	// DownloadByID returns the PEM content of a public key file by its ID.
	// Private keys are never handed out.
	DownloadByID(ctx context.Context, keyID string) ([]byte, error)
}

// CryptoKeyOperationService runs RSA operations with keys from the catalog.
type CryptoKeyOperationService interface {
	// Encrypt seals data in a hybrid envelope for the public key keyID.
	Encrypt(ctx context.Context, keyID string, data []byte) ([]byte, error)

	// Decrypt opens a hybrid envelope with the private key keyID.
	Decrypt(ctx context.Context, keyID string, envelope []byte) ([]byte, error)

	// Sign signs data with the private key keyID.
	Sign(ctx context.Context, keyID string, data []byte) ([]byte, error)

	// Verify checks signature over data with the public key keyID.
	Verify(ctx context.Context, keyID string, data, signature []byte) (bool, error)
}

// CryptoKeyRepository defines the interface for CryptoKey-related operations
type CryptoKeyRepository interface {
	Create(ctx context.Context, key *CryptoKeyMeta) error
	List(ctx context.Context, query *CryptoKeyQuery) ([]*CryptoKeyMeta, error)
	GetByID(ctx context.Context, keyID string) (*CryptoKeyMeta, error)
	UpdateByID(ctx context.Context, key *CryptoKeyMeta) error
	DeleteByID(ctx context.Context, keyID string) error
}

// KeyStore holds the key files referenced by the catalog.
type KeyStore interface {
	// PairDir creates and returns the directory receiving the files of one key pair.
	PairDir(keyPairID string) (string, error)

	// Read returns the content of a stored key file.
	Read(path string) ([]byte, error)

	// Delete removes a stored key file and its pair directory once it is empty.
	Delete(path string) error
}
