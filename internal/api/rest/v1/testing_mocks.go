//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yalmn/cryptomorph/internal/domain/keys"
)

// MockCryptoKeyGenerationService is a mock implementation of CryptoKeyGenerationService
type MockCryptoKeyGenerationService struct {
	mock.Mock
}

func (m *MockCryptoKeyGenerationService) GenerateKeyPair(ctx context.Context, keySize uint32) ([]*keys.CryptoKeyMeta, error) {
	args := m.Called(ctx, keySize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.CryptoKeyMeta), args.Error(1)
}

// MockCryptoKeyMetadataService is a mock implementation of CryptoKeyMetadataService
type MockCryptoKeyMetadataService struct {
	mock.Mock
}

func (m *MockCryptoKeyMetadataService) List(ctx context.Context, query *keys.CryptoKeyQuery) ([]*keys.CryptoKeyMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.CryptoKeyMeta), args.Error(1)
}

func (m *MockCryptoKeyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.CryptoKeyMeta, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.CryptoKeyMeta), args.Error(1)
}

func (m *MockCryptoKeyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// MockCryptoKeyDownloadService is a mock implementation of CryptoKeyDownloadService
type MockCryptoKeyDownloadService struct {
	mock.Mock
}

func (m *MockCryptoKeyDownloadService) DownloadByID(ctx context.Context, keyID string) ([]byte, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCryptoKeyOperationService is a mock implementation of CryptoKeyOperationService
type MockCryptoKeyOperationService struct {
	mock.Mock
}

func (m *MockCryptoKeyOperationService) Encrypt(ctx context.Context, keyID string, data []byte) ([]byte, error) {
	args := m.Called(ctx, keyID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCryptoKeyOperationService) Decrypt(ctx context.Context, keyID string, envelope []byte) ([]byte, error) {
	args := m.Called(ctx, keyID, envelope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCryptoKeyOperationService) Sign(ctx context.Context, keyID string, data []byte) ([]byte, error) {
	args := m.Called(ctx, keyID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCryptoKeyOperationService) Verify(ctx context.Context, keyID string, data, signature []byte) (bool, error) {
	args := m.Called(ctx, keyID, data, signature)
	return args.Bool(0), args.Error(1)
}
