package api

import "github.com/oniks98/learn-lingo-sub000/internal/models"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// UserResponse is the {ok,user} envelope returned by the auth endpoints.
// ok:false with a nil user means "no authenticated session" and is not an
// error condition.
type UserResponse struct {
	OK   bool         `json:"ok"`
	User *models.User `json:"user,omitempty"`
}

// RegisterErrorResponse is the {ok:false,error} shape of a failed registration.
type RegisterErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// LogoutResponse acknowledges a cleared session.
type LogoutResponse struct {
	Success bool `json:"success"`
}

// BookingCreatedResponse reports a stored booking. EmailSent=false is the
// degraded "booked without confirmation email" success state.
type BookingCreatedResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
}

// BookingsResponse wraps the caller's booking list.
type BookingsResponse struct {
	Bookings []*models.Booking `json:"bookings"`
}

// FavoritesResponse wraps the caller's favorite teacher ids.
type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
}

// TeachersResponse wraps the teacher preview list.
type TeachersResponse struct {
	Teachers []models.TeacherPreview `json:"teachers"`
}

// TeacherExtraResponse wraps a teacher's reviews for a locale.
type TeacherExtraResponse struct {
	Reviews []models.Review `json:"reviews"`
}

// RateResponse reports a display-currency exchange rate. A zero rate means no
// rate is available and prices should stay in USD.
type RateResponse struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}
