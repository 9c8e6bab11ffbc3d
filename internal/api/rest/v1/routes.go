package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/yalmn/cryptomorph/internal/domain/keys"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	cryptoKeyGenerationService keys.CryptoKeyGenerationService,
	cryptoKeyDownloadService keys.CryptoKeyDownloadService,
	cryptoKeyMetadataService keys.CryptoKeyMetadataService,
	cryptoKeyOperationService keys.CryptoKeyOperationService) {

	v1 := r.Group(BasePath) // lookup in version file

	keyHandler := NewKeyHandler(cryptoKeyGenerationService, cryptoKeyDownloadService, cryptoKeyMetadataService, cryptoKeyOperationService)
	v1.POST("/keys", keyHandler.GenerateKeys)
	v1.GET("/keys", keyHandler.ListMetadata)
	v1.GET("/keys/:id", keyHandler.GetMetadataByID)
	v1.GET("/keys/:id/file", keyHandler.DownloadByID)
	v1.DELETE("/keys/:id", keyHandler.DeleteByID)

	v1.POST("/keys/:id/encrypt", keyHandler.Encrypt)
	v1.POST("/keys/:id/decrypt", keyHandler.Decrypt)
	v1.POST("/keys/:id/sign", keyHandler.Sign)
	v1.POST("/keys/:id/verify", keyHandler.Verify)
}
