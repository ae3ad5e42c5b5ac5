package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
	"github.com/oniks98/learn-lingo-sub000/internal/identity"
)

// providerMessages is the fixed vocabulary of user-facing messages for
// identity-provider failures. Unmapped tagged errors fall through to the
// generic message.
var providerMessages = map[error]string{
	identity.ErrEmailExists:        "Email already in use",
	identity.ErrEmailNotFound:      "No account found for this email",
	identity.ErrInvalidCredentials: "Invalid email or password",
	identity.ErrUserDisabled:       "This account has been disabled",
	identity.ErrExpiredOOBCode:     "This link has expired",
	identity.ErrInvalidOOBCode:     "This link is invalid or has already been used",
	identity.ErrTooManyAttempts:    "Too many attempts, please try again later",
	identity.ErrWeakPassword:       "Password is too weak",
}

// respondServiceError maps service and provider errors onto the HTTP error
// taxonomy. Anything unrecognized becomes a 500 with no internal detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrTeacherNotFound),
		errors.Is(err, core.ErrBookingNotFound),
		errors.Is(err, core.ErrFavoriteNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	default:
		if msg, status, ok := providerErrorStatus(err); ok {
			c.JSON(status, ErrorResponse{Error: msg})
			return
		}
		c.Error(err) // surfaces in the request log
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
	}
}

// providerErrorStatus resolves a tagged identity error to its message and
// HTTP status.
func providerErrorStatus(err error) (string, int, bool) {
	for tagged, msg := range providerMessages {
		if errors.Is(err, tagged) {
			status := http.StatusBadRequest
			if errors.Is(err, identity.ErrInvalidCredentials) ||
				errors.Is(err, identity.ErrUserDisabled) {
				status = http.StatusUnauthorized
			}
			return msg, status, true
		}
	}
	if errors.Is(err, identity.ErrProvider) {
		return "Something went wrong, please try again", http.StatusBadGateway, true
	}
	return "", 0, false
}
