package core

import (
	"context"

	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// UserService defines the interface for user-profile operations.
type UserService interface {
	// Sync upserts the canonical user record from verified token claims and
	// returns it. It is the server side of the client auth reconciliation.
	Sync(ctx context.Context, claims TokenClaims) (*models.User, error)
	GetByID(ctx context.Context, uid string) (*models.User, error)
	UpdateUsername(ctx context.Context, uid, username string) (*models.User, error)
	// DeleteAccount removes the user record, favorites, all bookings, and the
	// identity-provider account.
	DeleteAccount(ctx context.Context, uid string) error
}

// TokenClaims carries the identity fields extracted from a verified ID token.
type TokenClaims struct {
	UID           string
	Email         string
	Name          string
	PhotoURL      string
	Provider      string
	EmailVerified bool
}

// TeacherService defines read operations over the curated teachers tree.
type TeacherService interface {
	ListPreviews(ctx context.Context) ([]models.TeacherPreview, error)
	GetByID(ctx context.Context, teacherID string) (*models.Teacher, error)
	GetExtra(ctx context.Context, teacherID, locale string) ([]models.Review, error)
}

// BookingService defines the booking lifecycle: create, list own, delete own.
type BookingService interface {
	// Create validates and stores a booking, then dispatches a best-effort
	// confirmation email. emailSent reports whether the dispatch succeeded;
	// a false value is a degraded success, not an error.
	Create(ctx context.Context, uid string, req models.CreateBookingRequest) (booking *models.Booking, emailSent bool, err error)
	ListForUser(ctx context.Context, uid string) ([]*models.Booking, error)
	// Delete removes a booking iff it belongs to uid; otherwise ErrForbidden
	// and the record remains.
	Delete(ctx context.Context, uid, bookingID string) error
}

// FavoriteService manages a user's favorite-teacher flags.
type FavoriteService interface {
	List(ctx context.Context, uid string) ([]string, error)
	Add(ctx context.Context, uid, teacherID string) error
	Remove(ctx context.Context, uid, teacherID string) error
}

// RatesService converts USD prices to a display currency with a bounded
// number of external rate lookups.
type RatesService interface {
	// GetRate returns the USD→currency rate, serving from cache for up to an
	// hour. A zero rate with nil error means "no rate available, display USD".
	GetRate(ctx context.Context, currency string) (float64, error)
	DisplayPrice(ctx context.Context, priceUSD float64, currency string) string
}

// MailDispatcher hands booking confirmations to the mail pipeline. When a
// message queue is configured the job is published for a background consumer;
// otherwise it is sent inline.
type MailDispatcher interface {
	DispatchBookingConfirmation(ctx context.Context, booking *models.Booking, teacherName string) error
}

// AuthAccountDeleter removes an account from the identity provider. Satisfied
// by *auth.Client from the Firebase Admin SDK.
type AuthAccountDeleter interface {
	DeleteUser(ctx context.Context, uid string) error
}
