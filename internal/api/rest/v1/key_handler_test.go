//go:build unit
// +build unit

package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yalmn/cryptomorph/internal/app"
	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
	"github.com/yalmn/cryptomorph/internal/domain/keys"
	"github.com/yalmn/cryptomorph/internal/pkg/testutil"
)

type keyHandlerMocks struct {
	generation *MockCryptoKeyGenerationService
	download   *MockCryptoKeyDownloadService
	metadata   *MockCryptoKeyMetadataService
	operation  *MockCryptoKeyOperationService
}

func setupKeyHandler() (KeyHandler, *keyHandlerMocks) {
	gin.SetMode(gin.TestMode)
	mocks := &keyHandlerMocks{
		generation: new(MockCryptoKeyGenerationService),
		download:   new(MockCryptoKeyDownloadService),
		metadata:   new(MockCryptoKeyMetadataService),
		operation:  new(MockCryptoKeyOperationService),
	}
	return NewKeyHandler(mocks.generation, mocks.download, mocks.metadata, mocks.operation), mocks
}

func newTestContext(method, target string, body *bytes.Buffer, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	if body == nil {
		body = &bytes.Buffer{}
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, target, body)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	return c, w
}

func testKeyMeta(id, keyType string) *keys.CryptoKeyMeta {
	return &keys.CryptoKeyMeta{
		ID:              id,
		KeyPairID:       "pair-123",
		Algorithm:       cryptoalg.AlgorithmRSA,
		KeySize:         2048,
		Type:            keyType,
		DateTimeCreated: time.Now(),
	}
}

func TestKeyHandler_GenerateKeys_Success(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.generation.
		On("GenerateKeyPair", mock.Anything, uint32(2048)).
		Return([]*keys.CryptoKeyMeta{testKeyMeta("priv-123", "private"), testKeyMeta("pub-123", "public")}, nil)

	c, w := newTestContext("POST", "/keys", bytes.NewBufferString(`{"algorithm": "RSA", "key_size": 2048}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.GenerateKeys(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response []CryptoKeyMetaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "priv-123", response[0].ID)
	assert.Equal(t, "public", response[1].Type)
	mocks.generation.AssertExpectations(t)
}

func TestKeyHandler_GenerateKeys_InvalidKeySize(t *testing.T) {
	handler, mocks := setupKeyHandler()

	c, w := newTestContext("POST", "/keys", bytes.NewBufferString(`{"key_size": 256}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.GenerateKeys(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mocks.generation.AssertNotCalled(t, "GenerateKeyPair", mock.Anything, mock.Anything)
}

func TestKeyHandler_GenerateKeys_InvalidJSON(t *testing.T) {
	handler, _ := setupKeyHandler()

	c, w := newTestContext("POST", "/keys", bytes.NewBufferString(`{"key_size": "big"`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.GenerateKeys(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKeyHandler_GenerateKeys_Timeout(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.generation.
		On("GenerateKeyPair", mock.Anything, uint32(4096)).
		Return(nil, fmt.Errorf("prime search: %w", cryptoalg.ErrKeyGeneration))
	mocks.generation.
		On("GenerateKeyPair", mock.Anything, uint32(8192)).
		Return(nil, fmt.Errorf("prime search: %w", context.DeadlineExceeded))

	c, w := newTestContext("POST", "/keys", bytes.NewBufferString(`{"key_size": 4096}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.GenerateKeys(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	c, w = newTestContext("POST", "/keys", bytes.NewBufferString(`{"key_size": 8192}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.GenerateKeys(c)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestKeyHandler_ListMetadata_Success(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.metadata.
		On("List", mock.Anything, mock.MatchedBy(func(q *keys.CryptoKeyQuery) bool {
			return q.Type == "public" && q.Limit == 5 && q.Offset == 10 && q.SortOrder == "asc"
		})).
		Return([]*keys.CryptoKeyMeta{testKeyMeta("pub-123", "public")}, nil)

	c, w := newTestContext("GET", "/keys?type=public&limit=5&offset=10&sortOrder=asc", nil)

	handler.ListMetadata(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pub-123")
	mocks.metadata.AssertExpectations(t)
}

func TestKeyHandler_ListMetadata_EmptyCatalog(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.metadata.On("List", mock.Anything, mock.Anything).Return([]*keys.CryptoKeyMeta{}, nil)

	c, w := newTestContext("GET", "/keys", nil)

	handler.ListMetadata(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestKeyHandler_ListMetadata_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric limit", "limit=ten"},
		{"non-numeric offset", "offset=x"},
		{"bad timestamp", "dateTimeCreated=yesterday"},
		{"unknown sort field", "sortBy=owner"},
		{"unknown key type", "type=secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mocks := setupKeyHandler()

			c, w := newTestContext("GET", "/keys?"+tt.query, nil)

			handler.ListMetadata(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mocks.metadata.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestKeyHandler_GetMetadataByID(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.metadata.On("GetByID", mock.Anything, "abc-123").Return(testKeyMeta("abc-123", "private"), nil)
	mocks.metadata.On("GetByID", mock.Anything, "missing").Return(nil, fmt.Errorf("lookup: %w", keys.ErrKeyNotFound))

	c, w := newTestContext("GET", "/keys/abc-123", nil, gin.Param{Key: "id", Value: "abc-123"})
	handler.GetMetadataByID(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abc-123")

	c, w = newTestContext("GET", "/keys/missing", nil, gin.Param{Key: "id", Value: "missing"})
	handler.GetMetadataByID(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	mocks.metadata.AssertExpectations(t)
}

func TestKeyHandler_DownloadByID_Success(t *testing.T) {
	handler, mocks := setupKeyHandler()

	pemBytes := []byte("-----BEGIN RSA PUBLIC KEY-----\n...\n-----END RSA PUBLIC KEY-----\n")
	mocks.download.On("DownloadByID", mock.Anything, "pub-123").Return(pemBytes, nil)

	c, w := newTestContext("GET", "/keys/pub-123/file", nil, gin.Param{Key: "id", Value: "pub-123"})

	handler.DownloadByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/x-pem-file", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "pub-123-public-key.pem")
	assert.Equal(t, pemBytes, w.Body.Bytes())
}

func TestKeyHandler_DownloadByID_PrivateKeyRefused(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.download.On("DownloadByID", mock.Anything, "priv-123").
		Return(nil, fmt.Errorf("download of private key: %w", app.ErrKeyTypeMismatch))

	c, w := newTestContext("GET", "/keys/priv-123/file", nil, gin.Param{Key: "id", Value: "priv-123"})

	handler.DownloadByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKeyHandler_DeleteByID(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.metadata.On("DeleteByID", mock.Anything, "abc-123").Return(nil)
	mocks.metadata.On("DeleteByID", mock.Anything, "broken").Return(errors.New("disk failure"))
	mocks.metadata.On("DeleteByID", mock.Anything, "pub-123").
		Return(fmt.Errorf("public key pub-123 is still needed by private key priv-123: %w", app.ErrKeyTypeMismatch))

	c, w := newTestContext("DELETE", "/keys/abc-123", nil, gin.Param{Key: "id", Value: "abc-123"})
	handler.DeleteByID(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)

	c, w = newTestContext("DELETE", "/keys/broken", nil, gin.Param{Key: "id", Value: "broken"})
	handler.DeleteByID(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	c, w = newTestContext("DELETE", "/keys/pub-123", nil, gin.Param{Key: "id", Value: "pub-123"})
	handler.DeleteByID(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKeyHandler_Encrypt(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.operation.On("Encrypt", mock.Anything, "pub-123", []byte("hello")).Return([]byte("envelope"), nil)

	c, w := newTestContext("POST", "/keys/pub-123/encrypt", bytes.NewBufferString("hello"), gin.Param{Key: "id", Value: "pub-123"})

	handler.Encrypt(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "envelope", w.Body.String())
	mocks.operation.AssertExpectations(t)
}

func TestKeyHandler_Decrypt_Malformed(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.operation.On("Decrypt", mock.Anything, "priv-123", []byte("garbage")).
		Return(nil, fmt.Errorf("envelope too short: %w", cryptoalg.ErrMalformedInput))

	c, w := newTestContext("POST", "/keys/priv-123/decrypt", bytes.NewBufferString("garbage"), gin.Param{Key: "id", Value: "priv-123"})

	handler.Decrypt(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "decrypt with key priv-123 failed")
}

func TestKeyHandler_Sign_WrongKeyType(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.operation.On("Sign", mock.Anything, "pub-123", []byte("doc")).
		Return(nil, fmt.Errorf("expected private key, got public: %w", app.ErrKeyTypeMismatch))

	c, w := newTestContext("POST", "/keys/pub-123/sign", bytes.NewBufferString("doc"), gin.Param{Key: "id", Value: "pub-123"})

	handler.Sign(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKeyHandler_Verify(t *testing.T) {
	handler, mocks := setupKeyHandler()

	mocks.operation.On("Verify", mock.Anything, "pub-123", []byte("doc"), []byte("sig")).Return(true, nil)

	body, contentType := testutil.CreateMultipartBody(t, map[string][]byte{
		"file":      []byte("doc"),
		"signature": []byte("sig"),
	})
	c, w := newTestContext("POST", "/keys/pub-123/verify", body, gin.Param{Key: "id", Value: "pub-123"})
	c.Request.Header.Set("Content-Type", contentType)

	handler.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid": true}`, w.Body.String())
	mocks.operation.AssertExpectations(t)
}

func TestKeyHandler_Verify_MissingSignature(t *testing.T) {
	handler, mocks := setupKeyHandler()

	body, contentType := testutil.CreateMultipartBody(t, map[string][]byte{
		"file": []byte("doc"),
	})
	c, w := newTestContext("POST", "/keys/pub-123/verify", body, gin.Param{Key: "id", Value: "pub-123"})
	c.Request.Header.Set("Content-Type", contentType)

	handler.Verify(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mocks.operation.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
