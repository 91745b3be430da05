package file

import (
	"net/http"

	"bitwise74/files-api/app/respond"
	"bitwise74/files-api/internal"

	"github.com/gin-gonic/gin"
)

// FileFetch returns a file by it's ID if the user owns it
func FileFetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	file, err := d.Files.Show(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, file)
}
