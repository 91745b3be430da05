// Package auth holds the session endpoints
package auth

import (
	"net/http"

	"bitwise74/files-api/app/respond"
	"bitwise74/files-api/internal"
	"bitwise74/files-api/internal/service"

	"github.com/gin-gonic/gin"
)

// Connect checks Basic credentials and opens a new session
func Connect(c *gin.Context, d *internal.Deps) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		respond.Error(c, service.ErrUnauthorized)
		return
	}

	user, err := d.Users.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		respond.Error(c, err)
		return
	}

	token, err := d.Sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
