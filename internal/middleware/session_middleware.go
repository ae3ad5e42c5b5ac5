package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oniks98/learn-lingo-sub000/internal/session"
)

// CtxSessionClaims is the Gin context key for verified session-cookie claims.
const CtxSessionClaims = "sessionClaims"

// RequireSession guards routes that authenticate with the session cookie
// (profile update, account deletion, email change). An absent or invalid
// cookie is a 401; the claims are placed in the context otherwise.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := sessions.GetLoginSession(c.Request)
		if err != nil || claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
			return
		}
		c.Set(CtxSessionClaims, claims)
		c.Next()
	}
}
