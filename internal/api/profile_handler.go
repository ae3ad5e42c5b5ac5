package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
	"github.com/oniks98/learn-lingo-sub000/internal/middleware"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
	"github.com/oniks98/learn-lingo-sub000/internal/session"
)

// ProfileHandler handles profile update and account deletion. These routes
// authenticate with the session cookie rather than a bearer token.
type ProfileHandler struct {
	userService core.UserService
	sessions    *session.Manager
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(us core.UserService, sessions *session.Manager) *ProfileHandler {
	return &ProfileHandler{userService: us, sessions: sessions}
}

func sessionClaims(c *gin.Context) *session.Claims {
	raw, exists := c.Get(middleware.CtxSessionClaims)
	if !exists {
		return nil
	}
	claims, _ := raw.(*session.Claims)
	return claims
}

// Update handles PATCH /api/profile {username}. The session cookie is
// re-issued so it carries the new name.
func (h *ProfileHandler) Update(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	user, err := h.userService.UpdateUsername(c.Request.Context(), claims.UID, req.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.sessions.SetLoginSession(c.Writer, user.UID, user.Email, user.Username, user.Provider); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, UserResponse{OK: true, User: user})
}

// Delete handles DELETE /api/profile: removes the user record, favorites,
// all bookings, and the auth account, then clears the session.
func (h *ProfileHandler) Delete(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), claims.UID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.sessions.ClearLoginSession(c.Writer)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Account deleted"})
}
