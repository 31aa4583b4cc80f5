package middleware

import (
	"net/http"
	"strings"

	"communityhub/internal/pkg"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// Auth verifies the bearer token and injects the caller's user id into the
// request context. Missing credential is 401; a present but
// invalid/expired/malformed one is 403.
func Auth(maker *pkg.TokenMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			pkg.FailAbort(c, http.StatusUnauthorized, pkg.FieldError{
				Message: "Missing token.",
				Code:    pkg.CodeNotSignedIn,
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			pkg.FailAbort(c, http.StatusForbidden, pkg.FieldError{
				Message: "Invalid authorization format.",
				Code:    pkg.CodeNotSignedIn,
			})
			return
		}

		claims, err := maker.Parse(parts[1])
		if err != nil {
			pkg.FailAbort(c, http.StatusForbidden, pkg.FieldError{
				Message: "Invalid or expired token.",
				Code:    pkg.CodeNotSignedIn,
			})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// CallerID reads the user id the auth middleware stored.
func CallerID(c *gin.Context) string {
	v, _ := c.Get(ContextUserIDKey)
	id, _ := v.(string)
	return id
}
