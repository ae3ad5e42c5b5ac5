// Package session issues and verifies the signed session cookie identifying
// an authenticated browser session. Any verification failure is treated as
// "no session" rather than an error; the caller simply re-authenticates.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// CookieName is the name of the HTTP-only session cookie.
const CookieName = "session"

// Claims are the signed contents of a session cookie.
type Claims struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewManager creates a session manager. ttl is typically one week; secure
// marks the cookie Secure and should be set outside local development.
func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Sign produces a compact signed token for the given identity.
func (m *Manager) Sign(uid, email, username, provider string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UID:      uid,
		Email:    email,
		Username: username,
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token, returning its claims. Expired,
// malformed, or mis-signed tokens all return an error.
func (m *Manager) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// SetLoginSession signs the identity into a session token and attaches it as
// an HTTP-only, same-site cookie on the response.
func (m *Manager) SetLoginSession(w http.ResponseWriter, uid, email, username, provider string) error {
	token, err := m.Sign(uid, email, username, provider)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// GetLoginSession reads and verifies the session cookie from a request. It
// returns (nil, nil) when the cookie is absent, malformed, expired, or
// otherwise invalid; verification failures never surface as errors.
func (m *Manager) GetLoginSession(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	claims, err := m.Verify(cookie.Value)
	if err != nil {
		return nil, nil
	}
	return claims, nil
}

// ClearLoginSession expires the session cookie on the response.
func (m *Manager) ClearLoginSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
