package auth

import (
	"net/http"

	"bitwise74/files-api/app/respond"
	"bitwise74/files-api/internal"

	"github.com/gin-gonic/gin"
)

// Disconnect destroys the session used by the request
func Disconnect(c *gin.Context, d *internal.Deps) {
	token := c.MustGet("token").(string)

	if err := d.Sessions.Destroy(c.Request.Context(), token); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
