package root

import (
	"net/http"

	"bitwise74/files-api/app/respond"
	"bitwise74/files-api/internal"

	"github.com/gin-gonic/gin"
)

// Stats returns the number of users and files
func Stats(c *gin.Context, d *internal.Deps) {
	users, err := d.Store.CountUsers(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	files, err := d.Store.CountFiles(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"files": files,
	})
}
