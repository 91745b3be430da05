package root

import (
	"context"
	"net/http"
	"time"

	"bitwise74/files-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Status reports whether the session store and the metadata store answer
func Status(c *gin.Context, d *internal.Deps) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	kvErr := d.KV.Ping(ctx)
	if kvErr != nil {
		zap.L().Warn("Session store unreachable", zap.Error(kvErr))
	}

	dbErr := d.Store.Ping(ctx)
	if dbErr != nil {
		zap.L().Warn("Metadata store unreachable", zap.Error(dbErr))
	}

	c.JSON(http.StatusOK, gin.H{
		"redis": kvErr == nil,
		"db":    dbErr == nil,
	})
}
