package models

import "time"

// Booking represents a trial-lesson booking under bookings/{id}. Bookings are
// immutable once created; the only transitions are create and delete, and
// deletion is restricted to the owning user.
type Booking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	TeacherID   string    `json:"teacherId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Reason      string    `json:"reason"`
	BookingDate time.Time `json:"bookingDate"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
