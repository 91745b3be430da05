package file

import (
	"net/http"
	"strconv"

	"bitwise74/files-api/app/respond"
	"bitwise74/files-api/internal"

	"github.com/gin-gonic/gin"
)

// FileServe returns the raw content of a file, or of one of its thumbnails
// with ?size. Anonymous callers only see public files.
func FileServe(c *gin.Context, d *internal.Deps) {
	userID := c.GetString("userID")

	size := 0
	if s := c.Query("size"); s != "" {
		var err error

		size, err = strconv.Atoi(s)
		if err != nil || size == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid size",
			})
			return
		}
	}

	content, err := d.Files.Content(c.Request.Context(), userID, c.Param("id"), size)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.Data(http.StatusOK, content.ContentType, content.Data)
}
