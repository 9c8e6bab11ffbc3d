package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yalmn/cryptomorph/internal/app"
	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
	"github.com/yalmn/cryptomorph/internal/domain/keys"
)

// statusFromError maps service errors onto HTTP status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, keys.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, cryptoalg.ErrMalformedInput), errors.Is(err, app.ErrKeyTypeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}
