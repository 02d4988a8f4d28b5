package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key holding the authenticated user id.
const userIDKey = "userID"

// userIDHeader carries the pre-validated user identity. Session issuance and
// validation happen upstream.
const userIDHeader = "X-User-ID"

// RequireUser rejects requests without a user identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(userIDHeader)
		if id == "" {
			RespondError(c, http.StatusUnauthorized, "missing_user", errors.New("missing user identity"))
			c.Abort()
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
