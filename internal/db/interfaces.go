package db

import (
	"context"
	"errors"

	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// ErrNotFound is returned when a referenced node is absent from the database.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, uid string) error
}

// TeacherRepository defines read access to the externally curated teachers tree.
type TeacherRepository interface {
	List(ctx context.Context) ([]*models.Teacher, error)
	GetByID(ctx context.Context, teacherID string) (*models.Teacher, error)
	GetReviews(ctx context.Context, teacherID, locale string) ([]models.Review, error)
}

// BookingRepository defines the interface for booking storage operations.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByUserID(ctx context.Context, uid string) ([]*models.Booking, error)
	Delete(ctx context.Context, bookingID string) error
	DeleteByUserID(ctx context.Context, uid string) error
}

// FavoriteRepository manages the users/{uid}/favorites flag set.
type FavoriteRepository interface {
	List(ctx context.Context, uid string) ([]string, error)
	Add(ctx context.Context, uid, teacherID string) error
	// Remove returns ErrNotFound when the flag is absent; no write happens then.
	Remove(ctx context.Context, uid, teacherID string) error
	RemoveAll(ctx context.Context, uid string) error
}
