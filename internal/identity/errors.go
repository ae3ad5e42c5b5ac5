package identity

import (
	"errors"
	"strings"
)

// Provider failures are mapped onto a closed set of tagged errors. Handlers
// switch on these with errors.Is; raw provider code strings never leave this
// package.
var (
	ErrEmailExists        = errors.New("email already in use")
	ErrEmailNotFound      = errors.New("email not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrExpiredOOBCode     = errors.New("confirmation link expired")
	ErrInvalidOOBCode     = errors.New("confirmation link is invalid or has already been used")
	ErrTooManyAttempts    = errors.New("too many attempts, try again later")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrProvider           = errors.New("identity provider error")
)

// mapProviderCode converts an Identity Toolkit error code into its tagged
// error. Codes sometimes carry a suffix (e.g. "WEAK_PASSWORD : ..."), so only
// the leading token is matched.
func mapProviderCode(code string) error {
	if i := strings.IndexAny(code, " :"); i > 0 {
		code = code[:i]
	}
	switch code {
	case "EMAIL_EXISTS":
		return ErrEmailExists
	case "EMAIL_NOT_FOUND":
		return ErrEmailNotFound
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return ErrInvalidCredentials
	case "USER_DISABLED":
		return ErrUserDisabled
	case "EXPIRED_OOB_CODE":
		return ErrExpiredOOBCode
	case "INVALID_OOB_CODE":
		return ErrInvalidOOBCode
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return ErrTooManyAttempts
	case "WEAK_PASSWORD":
		return ErrWeakPassword
	default:
		return ErrProvider
	}
}
