package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
	"github.com/oniks98/learn-lingo-sub000/internal/identity"
	"github.com/oniks98/learn-lingo-sub000/internal/middleware"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// EmailHandler proxies the out-of-band email flows (verification, email
// change, password reset) to the identity provider.
type EmailHandler struct {
	identity    *identity.Client
	userService core.UserService
	logger      *zap.Logger
}

// NewEmailHandler creates a new EmailHandler.
func NewEmailHandler(idp *identity.Client, us core.UserService, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{identity: idp, userService: us, logger: logger}
}

// SendVerification handles POST /api/email/verify/send (bearer token). It
// asks the provider to mail a fresh verification link.
func (h *EmailHandler) SendVerification(c *gin.Context) {
	idToken := c.GetString(middleware.CtxIDToken)
	if idToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}
	if err := h.identity.SendEmailVerification(c.Request.Context(), idToken); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Verification email sent"})
}

// ConfirmVerification handles POST /api/email/verify {oobCode}. On success
// the canonical user record flips to emailVerified=true.
func (h *EmailHandler) ConfirmVerification(c *gin.Context) {
	var req models.ConfirmOOBRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "oobCode is required"})
		return
	}

	email, err := h.identity.ConfirmEmailVerification(c.Request.Context(), req.OOBCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.logger.Info("Email verified via OOB code", zap.String("email", email))
	c.JSON(http.StatusOK, SuccessResponse{Message: "Email verified"})
}

// SendChange handles POST /api/email/change {newEmail} (bearer token): the
// provider mails a confirmation link to the new address.
func (h *EmailHandler) SendChange(c *gin.Context) {
	idToken := c.GetString(middleware.CtxIDToken)
	if idToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SendEmailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "newEmail is required"})
		return
	}

	if err := h.identity.SendEmailChange(c.Request.Context(), idToken, req.NewEmail); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Confirmation email sent to the new address"})
}

// ConfirmChange handles POST /api/email/change/confirm {oobCode}. The
// provider applies the address move; the canonical record catches up on the
// next sync.
func (h *EmailHandler) ConfirmChange(c *gin.Context) {
	var req models.ConfirmOOBRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "oobCode is required"})
		return
	}

	email, err := h.identity.ConfirmEmailVerification(c.Request.Context(), req.OOBCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.logger.Info("Email change confirmed", zap.String("email", email))
	c.JSON(http.StatusOK, SuccessResponse{Message: "Email address updated"})
}

// SendPasswordReset handles POST /api/email/reset {email}. To avoid account
// enumeration, an unknown email still reports success.
func (h *EmailHandler) SendPasswordReset(c *gin.Context) {
	var req models.SendPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email is required"})
		return
	}

	if err := h.identity.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.logger.Warn("Password reset request failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "If the email exists, a reset link has been sent"})
}

// ConfirmPasswordReset handles POST /api/email/reset/confirm
// {oobCode,newPassword}.
func (h *EmailHandler) ConfirmPasswordReset(c *gin.Context) {
	var req models.ConfirmPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "oobCode and newPassword are required"})
		return
	}

	if _, err := h.identity.ConfirmPasswordReset(c.Request.Context(), req.OOBCode, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Password updated"})
}
