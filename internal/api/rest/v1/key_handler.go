package v1

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yalmn/cryptomorph/internal/domain/keys"
)

// MaxPayloadBytes bounds request bodies of the key operation endpoints
const MaxPayloadBytes = 32 << 20

// KeyHandler defines the interface for handling key-related operations
type KeyHandler interface {
	GenerateKeys(ctx *gin.Context)
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
	Sign(ctx *gin.Context)
	Verify(ctx *gin.Context)
}

// keyHandler struct holds the services
type keyHandler struct {
	cryptoKeyGenerationService keys.CryptoKeyGenerationService
	cryptoKeyDownloadService   keys.CryptoKeyDownloadService
	cryptoKeyMetadataService   keys.CryptoKeyMetadataService
	cryptoKeyOperationService  keys.CryptoKeyOperationService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(
	cryptoKeyGenerationService keys.CryptoKeyGenerationService,
	cryptoKeyDownloadService keys.CryptoKeyDownloadService,
	cryptoKeyMetadataService keys.CryptoKeyMetadataService,
	cryptoKeyOperationService keys.CryptoKeyOperationService,
) KeyHandler {
	return &keyHandler{
		cryptoKeyGenerationService: cryptoKeyGenerationService,
		cryptoKeyDownloadService:   cryptoKeyDownloadService,
		cryptoKeyMetadataService:   cryptoKeyMetadataService,
		cryptoKeyOperationService:  cryptoKeyOperationService,
	}
}

// GenerateKeys handles the POST request to generate an RSA key pair
// @Summary Generate an RSA key pair
// @Description Generate an RSA key pair of the requested size, store both key files and register their metadata.
// @Tags Key
// @Accept json
// @Produce json
// @Param requestBody body GenerateKeyRequest true "Key generation parameters"
// @Success 201 {array} CryptoKeyMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [post]
func (handler *keyHandler) GenerateKeys(ctx *gin.Context) {
	var request GenerateKeyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid key data: %v", err))
		return
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	cryptoKeyMetas, err := handler.cryptoKeyGenerationService.GenerateKeyPair(ctx.Request.Context(), request.KeySize)
	if err != nil {
		abortWithError(ctx, statusFromError(err), fmt.Sprintf("error generating key pair: %v", err))
		return
	}

	ctx.JSON(http.StatusCreated, newCryptoKeyMetaListResponse(cryptoKeyMetas))
}

// ListMetadata handles the GET request to list cryptographic key metadata with optional query parameters
// @Summary List cryptographic key metadata based on query parameters
// @Description Fetch a list of key metadata filtered by type, key pair and creation date, with pagination and sorting options.
// @Tags Key
// @Produce json
// @Param type query string false "Key Type"
// @Param keyPairId query string false "Key Pair ID"
// @Param dateTimeCreated query string false "Key Creation Date (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} CryptoKeyMetaResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [get]
func (handler *keyHandler) ListMetadata(ctx *gin.Context) {
	query, err := parseCryptoKeyQuery(ctx)
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := query.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	cryptoKeyMetas, err := handler.cryptoKeyMetadataService.List(ctx.Request.Context(), query)
	if err != nil {
		abortWithError(ctx, statusFromError(err), fmt.Sprintf("list query failed: %v", err))
		return
	}

	ctx.JSON(http.StatusOK, newCryptoKeyMetaListResponse(cryptoKeyMetas))
}

func parseCryptoKeyQuery(ctx *gin.Context) (*keys.CryptoKeyQuery, error) {
	query := keys.NewCryptoKeyQuery()

	query.Algorithm = ctx.Query("algorithm")
	query.Type = ctx.Query("type")
	query.KeyPairID = ctx.Query("keyPairId")

	if dateTimeCreated := ctx.Query("dateTimeCreated"); dateTimeCreated != "" {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err != nil {
			return nil, fmt.Errorf("invalid dateTimeCreated: %w", err)
		}
		query.DateTimeCreated = parsedTime
	}

	for name, target := range map[string]*int{"limit": &query.Limit, "offset": &query.Offset} {
		if raw := ctx.Query(name); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", name, err)
			}
			*target = value
		}
	}

	if sortBy := ctx.Query("sortBy"); sortBy != "" {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sortOrder"); sortOrder != "" {
		query.SortOrder = sortOrder
	}

	return query, nil
}

// GetMetadataByID handles the GET request to retrieve crypto key metadata by ID
// @Summary Retrieve crypto key metadata by ID
// @Tags Key
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} CryptoKeyMetaResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [get]
func (handler *keyHandler) GetMetadataByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	cryptoKeyMeta, err := handler.cryptoKeyMetadataService.GetByID(ctx.Request.Context(), keyID)
	if err != nil {
		abortWithError(ctx, statusFromError(err), fmt.Sprintf("could not get key with id %s: %v", keyID, err))
		return
	}

	ctx.JSON(http.StatusOK, newCryptoKeyMetaResponse(cryptoKeyMeta))
}

// DownloadByID handles GET request to download a public key by ID
// @Summary Download a public key by ID
// @Description Download the PEM file of a public key. Private keys cannot be downloaded.
// @Tags Key
// @Produce application/x-pem-file
// @Param id path string true "Key ID"
// @Success 200 {file} file "Public key in PEM format"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id}/file [get]
func (handler *keyHandler) DownloadByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	pemBytes, err := handler.cryptoKeyDownloadService.DownloadByID(ctx.Request.Context(), keyID)
	if err != nil {
		abortWithError(ctx, statusFromError(err), fmt.Sprintf("could not download key with id %s: %v", keyID, err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-public-key.pem", keyID))
	ctx.Data(http.StatusOK, "application/x-pem-file", pemBytes)
}

// DeleteByID handles the DELETE request to delete a key by ID
// @Summary Delete a cryptographic key by ID
// @Tags Key
// @Param id path string true "Key ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [delete]
func (handler *keyHandler) DeleteByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	if err := handler.cryptoKeyMetadataService.DeleteByID(ctx.Request.Context(), keyID); err != nil {
		abortWithError(ctx, statusFromError(err), fmt.Sprintf("error deleting key with id %s: %v", keyID, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Encrypt handles the POST request to seal the raw request body for a public key
// @Summary Hybrid-encrypt data for a public key
// @Tags Key
// @Accept application/octet-stream
// @Produce application/octet-stream
// @Param id path string true "Public Key ID"
// @Success 200 {file} file "Hybrid envelope"
// @Router /keys/{id}/encrypt [post]
func (handler *keyHandler) Encrypt(ctx *gin.Context) {
	handler.transform(ctx, "encrypt", handler.cryptoKeyOperationService.Encrypt)
}

// Decrypt handles the POST request to open a hybrid envelope with a private key
// @Summary Decrypt a hybrid envelope
// @Tags Key
// @Accept application/octet-stream
// @Produce application/octet-stream
// @Param id path string true "Private Key ID"
// @Success 200 {file} file "Plaintext"
// @Router /keys/{id}/decrypt [post]
func (handler *keyHandler) Decrypt(ctx *gin.Context) {
	handler.transform(ctx, "decrypt", handler.cryptoKeyOperationService.Decrypt)
}

// Sign handles the POST request to sign the raw request body with a private key
// @Summary Sign data
// @Tags Key
// @Accept application/octet-stream
// @Produce application/octet-stream
// @Param id path string true "Private Key ID"
// @Success 200 {file} file "Raw big-endian signature"
// @Router /keys/{id}/sign [post]
func (handler *keyHandler) Sign(ctx *gin.Context) {
	handler.transform(ctx, "sign", handler.cryptoKeyOperationService.Sign)
}

type keyOperation func(ctx context.Context, keyID string, data []byte) ([]byte, error)

func (handler *keyHandler) transform(ctx *gin.Context, name string, op keyOperation) {
	keyID := ctx.Param("id")

	data, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, MaxPayloadBytes))
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return
	}

	out, err := op(ctx.Request.Context(), keyID, data)
	if err != nil {
		abortWithError(ctx, statusFromError(err), fmt.Sprintf("%s with key %s failed: %v", name, keyID, err))
		return
	}

	ctx.Data(http.StatusOK, "application/octet-stream", out)
}

// Verify handles the POST request to check a signature with a public key
// @Summary Verify a signature
// @Tags Key
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Public Key ID"
// @Param file formData file true "Signed data"
// @Param signature formData file true "Raw signature"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys/{id}/verify [post]
func (handler *keyHandler) Verify(ctx *gin.Context) {
	keyID := ctx.Param("id")
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, MaxPayloadBytes)

	data, err := readFormFile(ctx, "file")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	signature, err := readFormFile(ctx, "signature")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	valid, err := handler.cryptoKeyOperationService.Verify(ctx.Request.Context(), keyID, data, signature)
	if err != nil {
		abortWithError(ctx, statusFromError(err), fmt.Sprintf("verify with key %s failed: %v", keyID, err))
		return
	}

	ctx.JSON(http.StatusOK, VerifyResponse{Valid: valid})
}

func readFormFile(ctx *gin.Context, field string) ([]byte, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing form file %q: %w", field, err)
	}
	return readMultipartFile(header)
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open form file %q: %w", header.Filename, err)
	}
	defer file.Close()

	return io.ReadAll(file)
}
