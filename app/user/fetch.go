package user

import (
	"errors"
	"net/http"

	"bitwise74/files-api/app/respond"
	"bitwise74/files-api/internal"
	"bitwise74/files-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserFetch returns the user behind the session
func UserFetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	user, err := d.Users.Get(c.Request.Context(), userID)
	if err != nil {
		// Session outlived its user
		if errors.Is(err, service.ErrNotFound) {
			err = service.ErrUnauthorized
		}

		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"email": user.Email,
	})
}
