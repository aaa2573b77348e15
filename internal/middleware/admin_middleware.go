package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates a route group to privileged identities. It must run
// after VerifyToken. Non-admin identities get 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
			return
		}
		if !ident.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Access denied: admin privileges required"})
			return
		}
		c.Next()
	}
}
