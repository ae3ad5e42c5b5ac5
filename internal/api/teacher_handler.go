package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
)

// TeacherHandler serves the public teacher catalogue.
type TeacherHandler struct {
	teacherService core.TeacherService
}

// NewTeacherHandler creates a new TeacherHandler.
func NewTeacherHandler(ts core.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: ts}
}

// List handles GET /api/teachers (preview fields only).
func (h *TeacherHandler) List(c *gin.Context) {
	previews, err := h.teacherService.ListPreviews(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, TeachersResponse{Teachers: previews})
}

// Get handles GET /api/teachers/:id.
func (h *TeacherHandler) Get(c *gin.Context) {
	teacher, err := h.teacherService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// GetExtra handles GET /api/teachers/:id/extra?locale=uk, the detail reviews
// by locale.
func (h *TeacherHandler) GetExtra(c *gin.Context) {
	reviews, err := h.teacherService.GetExtra(c.Request.Context(), c.Param("id"), c.Query("locale"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, TeacherExtraResponse{Reviews: reviews})
}
