package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

func newTeacherRouter(svc core.TeacherService) *gin.Engine {
	r := gin.New()
	h := NewTeacherHandler(svc)
	r.GET("/api/teachers", h.List)
	r.GET("/api/teachers/:id", h.Get)
	r.GET("/api/teachers/:id/extra", h.GetExtra)
	return r
}

func TestTeacherEndpoints(t *testing.T) {
	t.Run("list previews", func(t *testing.T) {
		svc := &fakeTeacherService{previews: []models.TeacherPreview{{ID: "t1", Name: "Jane"}}}
		rec := doJSON(t, newTeacherRouter(svc), http.MethodGet, "/api/teachers", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var res TeachersResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res.Teachers, 1)
		assert.Equal(t, "t1", res.Teachers[0].ID)
	})

	t.Run("get by id", func(t *testing.T) {
		svc := &fakeTeacherService{teacher: &models.Teacher{ID: "t1", Name: "Jane", Surname: "Doe"}}
		rec := doJSON(t, newTeacherRouter(svc), http.MethodGet, "/api/teachers/t1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var res models.Teacher
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Jane", res.Name)
	})

	t.Run("unknown teacher", func(t *testing.T) {
		svc := &fakeTeacherService{err: fmt.Errorf("%w: id 'ghost'", core.ErrTeacherNotFound)}
		rec := doJSON(t, newTeacherRouter(svc), http.MethodGet, "/api/teachers/ghost", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("extra reviews", func(t *testing.T) {
		svc := &fakeTeacherService{reviews: []models.Review{{ReviewerName: "Olha", Comment: "Great lessons"}}}
		rec := doJSON(t, newTeacherRouter(svc), http.MethodGet, "/api/teachers/t1/extra?locale=uk", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var res TeacherExtraResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res.Reviews, 1)
		assert.Equal(t, "Olha", res.Reviews[0].ReviewerName)
	})

	t.Run("backend failure is an opaque 500", func(t *testing.T) {
		svc := &fakeTeacherService{err: errBackend}
		rec := doJSON(t, newTeacherRouter(svc), http.MethodGet, "/api/teachers", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var res ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Internal Server Error", res.Error)
	})
}

func TestRatesEndpoint(t *testing.T) {
	newRouter := func(svc core.RatesService) *gin.Engine {
		r := gin.New()
		r.GET("/api/rates", NewRatesHandler(svc).Get)
		return r
	}

	t.Run("known currency", func(t *testing.T) {
		rec := doJSON(t, newRouter(&fakeRatesService{rate: 41.3}), http.MethodGet, "/api/rates?currency=uah", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var res RateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "UAH", res.Currency)
		assert.Equal(t, 41.3, res.Rate)
	})

	t.Run("defaults to USD", func(t *testing.T) {
		rec := doJSON(t, newRouter(&fakeRatesService{rate: 1}), http.MethodGet, "/api/rates", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var res RateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "USD", res.Currency)
	})

	t.Run("zero rate signals USD fallback", func(t *testing.T) {
		rec := doJSON(t, newRouter(&fakeRatesService{rate: 0}), http.MethodGet, "/api/rates?currency=UAH", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var res RateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Zero(t, res.Rate)
	})
}
