package api

import (
	"context"
	"errors"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
	"github.com/oniks98/learn-lingo-sub000/internal/identity"
	"github.com/oniks98/learn-lingo-sub000/internal/middleware"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
	"github.com/oniks98/learn-lingo-sub000/internal/session"
)

// AuthAccounts is the slice of the Firebase Admin auth client the handler
// needs. *auth.Client satisfies it.
type AuthAccounts interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

// isEmailAlreadyExists is swappable so handler tests can exercise the
// duplicate-email branch without a live Admin SDK error value.
var isEmailAlreadyExists = auth.IsEmailAlreadyExists

// AuthHandler handles registration, login, logout, session introspection and
// the bearer-token user sync endpoint.
type AuthHandler struct {
	accounts    AuthAccounts
	identity    *identity.Client
	userService core.UserService
	sessions    *session.Manager
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts AuthAccounts, idp *identity.Client, us core.UserService, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:    accounts,
		identity:    idp,
		userService: us,
		sessions:    sessions,
		logger:      logger,
	}
}

// Register handles POST /api/auth/register. It creates the identity-provider
// account, upserts the user record, sends the verification email best-effort,
// and opens a session.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, RegisterErrorResponse{OK: false, Error: "email, password and name are required"})
		return
	}

	record, err := h.accounts.CreateUser(c.Request.Context(), (&auth.UserToCreate{}).
		Email(req.Email).
		Password(req.Password).
		DisplayName(req.Name))
	if err != nil {
		if isEmailAlreadyExists(err) {
			c.JSON(http.StatusBadRequest, RegisterErrorResponse{OK: false, Error: "Email already in use"})
			return
		}
		h.logger.Error("Failed to create auth account", zap.Error(err))
		c.JSON(http.StatusInternalServerError, RegisterErrorResponse{OK: false, Error: "Internal Server Error"})
		return
	}

	user, err := h.userService.Sync(c.Request.Context(), core.TokenClaims{
		UID:      record.UID,
		Email:    req.Email,
		Name:     req.Name,
		Provider: models.ProviderPassword,
	})
	if err != nil {
		h.logger.Error("Failed to create user record after registration",
			zap.String("uid", record.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, RegisterErrorResponse{OK: false, Error: "Internal Server Error"})
		return
	}

	// Best effort: the account works without the verification email, the
	// client offers a resend.
	if result, signInErr := h.identity.SignInWithPassword(c.Request.Context(), req.Email, req.Password); signInErr == nil {
		if mailErr := h.identity.SendEmailVerification(c.Request.Context(), result.IDToken); mailErr != nil {
			h.logger.Warn("Failed to send verification email", zap.String("uid", record.UID), zap.Error(mailErr))
		}
	}

	if err := h.sessions.SetLoginSession(c.Writer, user.UID, user.Email, user.Username, user.Provider); err != nil {
		h.logger.Error("Failed to set login session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, RegisterErrorResponse{OK: false, Error: "Internal Server Error"})
		return
	}
	c.JSON(http.StatusCreated, UserResponse{OK: true, User: user})
}

// Login handles POST /api/auth/login via the identity provider's password
// check. Invalid credentials are a uniform 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
		return
	}

	result, err := h.identity.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) || errors.Is(err, identity.ErrEmailNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		respondServiceError(c, err)
		return
	}

	record, err := h.accounts.GetUser(c.Request.Context(), result.UID)
	if err != nil {
		h.logger.Error("Failed to load auth account after login", zap.String("uid", result.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
		return
	}

	user, err := h.userService.Sync(c.Request.Context(), core.TokenClaims{
		UID:           record.UID,
		Email:         record.Email,
		Name:          record.DisplayName,
		PhotoURL:      record.PhotoURL,
		Provider:      models.ProviderPassword,
		EmailVerified: record.EmailVerified,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.sessions.SetLoginSession(c.Writer, user.UID, user.Email, user.Username, user.Provider); err != nil {
		h.logger.Error("Failed to set login session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, UserResponse{OK: true, User: user})
}

// Logout handles POST /api/auth/logout: clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.ClearLoginSession(c.Writer)
	c.JSON(http.StatusOK, LogoutResponse{Success: true})
}

// Me handles GET /api/auth/me. It reports {ok:false} for any absent or
// invalid session rather than an error status.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, err := h.sessions.GetLoginSession(c.Request)
	if err != nil || claims == nil {
		c.JSON(http.StatusOK, UserResponse{OK: false})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), claims.UID)
	if err != nil {
		// A stale cookie for a deleted account reads as signed out.
		c.JSON(http.StatusOK, UserResponse{OK: false})
		return
	}
	c.JSON(http.StatusOK, UserResponse{OK: true, User: user})
}

// Sync handles POST /api/auth/sync (bearer token). It upserts the canonical
// user record from the verified token and is the endpoint the client auth
// reconciler calls on every auth-state change.
func (h *AuthHandler) Sync(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	provider := c.GetString(middleware.CtxProvider)
	if provider == "google.com" {
		provider = models.ProviderGoogle
	} else if provider != "" {
		provider = models.ProviderPassword
	}

	user, err := h.userService.Sync(c.Request.Context(), core.TokenClaims{
		UID:           uid,
		Email:         c.GetString(middleware.CtxUserEmail),
		Name:          c.GetString(middleware.CtxUserName),
		PhotoURL:      c.GetString(middleware.CtxUserPhotoURL),
		Provider:      provider,
		EmailVerified: c.GetBool(middleware.CtxEmailVerified),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{OK: true, User: user})
}
