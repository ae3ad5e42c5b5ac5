package models

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateBookingRequest is the body of POST /api/bookings.
type CreateBookingRequest struct {
	TeacherID   string `json:"teacherId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	BookingDate string `json:"bookingDate" binding:"required"` // RFC 3339, must be in the future
	Comment     string `json:"comment,omitempty"`
}

// FavoriteRequest is the body of POST /api/favorites.
type FavoriteRequest struct {
	TeacherID string `json:"teacherId" binding:"required"`
}

// UpdateProfileRequest is the body of PATCH /api/profile.
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required"`
}

// SendEmailChangeRequest is the body of POST /api/email/change.
type SendEmailChangeRequest struct {
	NewEmail string `json:"newEmail" binding:"required,email"`
}

// ConfirmOOBRequest carries an out-of-band confirmation code issued by the
// identity provider (email verification, email change).
type ConfirmOOBRequest struct {
	OOBCode string `json:"oobCode" binding:"required"`
}

// SendPasswordResetRequest is the body of POST /api/email/reset.
type SendPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ConfirmPasswordResetRequest is the body of POST /api/email/reset/confirm.
type ConfirmPasswordResetRequest struct {
	OOBCode     string `json:"oobCode" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}
