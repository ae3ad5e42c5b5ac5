package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
	"github.com/oniks98/learn-lingo-sub000/internal/middleware"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// BookingHandler handles the booking lifecycle endpoints. All of them require
// a verified bearer identity.
type BookingHandler struct {
	bookingService core.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs core.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid booking request", Details: err.Error()})
		return
	}

	booking, emailSent, err := h.bookingService.Create(c.Request.Context(), uid, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Booking confirmed"
	if !emailSent {
		message = "Booking confirmed, but the confirmation email could not be sent"
	}
	c.JSON(http.StatusCreated, BookingCreatedResponse{
		ID:        booking.ID,
		Message:   message,
		EmailSent: emailSent,
	})
}

// List handles GET /api/bookings, filtered to the caller's own bookings.
func (h *BookingHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	bookings, err := h.bookingService.ListForUser(c.Request.Context(), uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, BookingsResponse{Bookings: bookings})
}

// Delete handles DELETE /api/bookings?id=... for the owning user only.
func (h *BookingHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	bookingID := c.Query("id")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameter 'id' is required"})
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), uid, bookingID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Booking deleted"})
}
