package core

import "errors"

// Service-level sentinel errors. Handlers map these onto the HTTP error
// taxonomy: validation → 400, forbidden → 403, not found → 404.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTeacherNotFound  = errors.New("teacher not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrForbidden        = errors.New("forbidden")
	ErrValidation       = errors.New("validation failed")
)
