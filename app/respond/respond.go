// Package respond turns service errors into JSON error responses
package respond

import (
	"errors"
	"net/http"

	"bitwise74/files-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error writes the response matching err. Infrastructure errors are logged
// and reported as 503 without details.
func Error(c *gin.Context, err error) {
	var verr *service.ValidationError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrConflict.Error()})
	case errors.Is(err, service.ErrFolderNoContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrFolderNoContent.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})

		zap.L().Error("Request failed", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
	}
}
