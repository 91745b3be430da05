package middleware

import (
	"net/http"

	"bitwise74/files-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const TokenHeader = "X-Token"

// NewTokenMiddleware rejects requests without a live session token in the
// X-Token header. The resolved user is set as userID and the token as token.
func NewTokenMiddleware(s *service.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)

		userID, ok, err := s.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Service unavailable",
			})

			zap.L().Error("Failed to resolve session", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
			return
		}

		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		c.Set("userID", userID)
		c.Set("token", token)
		c.Next()
	}
}

// NewOptionalTokenMiddleware sets userID when a live token is sent and lets
// every request through. Broken sessions are treated as anonymous.
func NewOptionalTokenMiddleware(s *service.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.Next()
			return
		}

		userID, ok, err := s.Resolve(c.Request.Context(), token)
		if err != nil {
			zap.L().Warn("Failed to resolve optional session", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
		}

		if ok {
			c.Set("userID", userID)
			c.Set("token", token)
		}

		c.Next()
	}
}
