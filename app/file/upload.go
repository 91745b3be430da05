// Package file holds the file endpoints
package file

import (
	"net/http"

	"bitwise74/files-api/app/respond"
	"bitwise74/files-api/internal"
	"bitwise74/files-api/internal/service"
	"bitwise74/files-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileUpload creates a file, image or folder owned by the session user
func FileUpload(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	var data service.CreateFileInput
	if err := c.ShouldBindJSON(&data); err != nil {
		if middleware.IsBodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "Request body size exceeds limit",
			})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
		return
	}

	file, err := d.Files.Create(c.Request.Context(), userID, data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, file)
}
