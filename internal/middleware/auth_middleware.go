package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse mirrors the one in internal/api to avoid an import cycle.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Context keys populated by the auth middleware for downstream handlers.
const (
	CtxUserID        = "userID"
	CtxUserEmail     = "userEmail"
	CtxUserName      = "userDisplayName"
	CtxUserPhotoURL  = "userPhotoURL"
	CtxEmailVerified = "userEmailVerified"
	CtxProvider      = "userProvider"
	CtxIDToken       = "userIDToken"
)

// AuthMiddleware provides Gin middleware for Firebase ID token authentication.
type AuthMiddleware struct {
	firebaseAuthClient *auth.Client
	logger             *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance. It panics on a nil
// auth client, which is a setup error the application cannot run with.
func NewAuthMiddleware(fbAuthClient *auth.Client, logger *zap.Logger) *AuthMiddleware {
	if fbAuthClient == nil {
		panic("Firebase Auth client is not initialized for AuthMiddleware")
	}
	return &AuthMiddleware{firebaseAuthClient: fbAuthClient, logger: logger}
}

// VerifyToken verifies a Firebase ID token from the Authorization header and
// sets identity fields in the Gin context. Every verification failure
// (missing, malformed, expired, revoked) is a uniform 401.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}
		idToken := parts[1]

		token, err := m.firebaseAuthClient.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			m.logger.Warn("ID token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		c.Set(CtxUserID, token.UID)
		c.Set(CtxIDToken, idToken)

		if email, ok := token.Claims["email"].(string); ok {
			c.Set(CtxUserEmail, email)
		}
		if name, ok := token.Claims["name"].(string); ok {
			c.Set(CtxUserName, name)
		}
		if picture, ok := token.Claims["picture"].(string); ok {
			c.Set(CtxUserPhotoURL, picture)
		}
		if verified, ok := token.Claims["email_verified"].(bool); ok {
			c.Set(CtxEmailVerified, verified)
		}
		if firebaseClaim, ok := token.Claims["firebase"].(map[string]interface{}); ok {
			if provider, ok := firebaseClaim["sign_in_provider"].(string); ok {
				c.Set(CtxProvider, provider)
			}
		}

		c.Next()
	}
}
