package file

import (
	"net/http"
	"strconv"

	"bitwise74/files-api/app/respond"
	"bitwise74/files-api/internal"
	"bitwise74/files-api/internal/model"

	"github.com/gin-gonic/gin"
)

// FileFetchBulk lists one page of the user's files under ?parentId
func FileFetchBulk(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 0
	}

	parent := model.ParentOf(c.Query("parentId"))

	files, err := d.Files.Index(c.Request.Context(), userID, parent, page)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, files)
}
