package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
	"github.com/oniks98/learn-lingo-sub000/internal/middleware"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// FavoriteHandler handles the favorites endpoints (bearer identity required).
type FavoriteHandler struct {
	favoriteService core.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(fs core.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: fs}
}

// List handles GET /api/favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	favorites, err := h.favoriteService.List(c.Request.Context(), uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, FavoritesResponse{Favorites: favorites})
}

// Add handles POST /api/favorites {teacherId}.
func (h *FavoriteHandler) Add(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "teacherId is required"})
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), uid, req.TeacherID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Favorite added"})
}

// Remove handles DELETE /api/favorites?teacherId=...
func (h *FavoriteHandler) Remove(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	teacherID := c.Query("teacherId")
	if teacherID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameter 'teacherId' is required"})
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), uid, teacherID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Favorite removed"})
}
