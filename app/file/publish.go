package file

import (
	"net/http"

	"bitwise74/files-api/app/respond"
	"bitwise74/files-api/internal"

	"github.com/gin-gonic/gin"
)

func FilePublish(c *gin.Context, d *internal.Deps) {
	setVisibility(c, d, true)
}

func FileUnpublish(c *gin.Context, d *internal.Deps) {
	setVisibility(c, d, false)
}

func setVisibility(c *gin.Context, d *internal.Deps, public bool) {
	userID := c.MustGet("userID").(string)

	file, err := d.Files.SetVisibility(c.Request.Context(), userID, c.Param("id"), public)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, file)
}
