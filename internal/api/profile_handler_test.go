package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oniks98/learn-lingo-sub000/internal/middleware"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
	"github.com/oniks98/learn-lingo-sub000/internal/session"
)

func newProfileRouter(users *fakeUserService, claims *session.Claims) *gin.Engine {
	r := gin.New()
	identify := func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.CtxSessionClaims, claims)
		}
	}
	h := NewProfileHandler(users, testSessionManager())
	r.PATCH("/api/profile", identify, h.Update)
	r.DELETE("/api/profile", identify, h.Delete)
	return r
}

func u1Claims() *session.Claims {
	return &session.Claims{UID: "u1", Email: "alex@example.com", Username: "Alex", Provider: "password"}
}

func TestProfileUpdate(t *testing.T) {
	t.Run("renames and re-issues the session cookie", func(t *testing.T) {
		users := newFakeUserService(&models.User{UID: "u1", Email: "alex@example.com", Username: "Alex", Provider: "password"})
		r := newProfileRouter(users, u1Claims())

		rec := doJSON(t, r, http.MethodPatch, "/api/profile", `{"username":"Oleksandr"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var res UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Oleksandr", res.User.Username)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		claims, err := testSessionManager().Verify(cookies[0].Value)
		require.NoError(t, err)
		assert.Equal(t, "Oleksandr", claims.Username)
	})

	t.Run("no session", func(t *testing.T) {
		r := newProfileRouter(newFakeUserService(), nil)
		rec := doJSON(t, r, http.MethodPatch, "/api/profile", `{"username":"Oleksandr"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty username", func(t *testing.T) {
		users := newFakeUserService(&models.User{UID: "u1"})
		r := newProfileRouter(users, u1Claims())
		rec := doJSON(t, r, http.MethodPatch, "/api/profile", `{"username":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProfileDelete(t *testing.T) {
	t.Run("deletes the account and clears the cookie", func(t *testing.T) {
		users := newFakeUserService(&models.User{UID: "u1", Email: "alex@example.com"})
		r := newProfileRouter(users, u1Claims())

		rec := doJSON(t, r, http.MethodDelete, "/api/profile", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"u1"}, users.deleted)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("already-deleted account", func(t *testing.T) {
		r := newProfileRouter(newFakeUserService(), u1Claims())
		rec := doJSON(t, r, http.MethodDelete, "/api/profile", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no session", func(t *testing.T) {
		r := newProfileRouter(newFakeUserService(), nil)
		rec := doJSON(t, r, http.MethodDelete, "/api/profile", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
