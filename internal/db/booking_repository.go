package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"firebase.google.com/go/v4/db"

	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

const bookingsPath = "bookings"

// rtdbBookingRepository implements BookingRepository on the Realtime Database.
type rtdbBookingRepository struct {
	client *db.Client
}

// NewBookingRepository creates a new Realtime Database backed BookingRepository.
func NewBookingRepository(client *db.Client) BookingRepository {
	if client == nil {
		log.Fatal("Realtime Database client is not initialized for BookingRepository.")
	}
	return &rtdbBookingRepository{client: client}
}

// Create writes a booking under bookings/{id}. The caller assigns the id.
func (r *rtdbBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		return errors.New("booking ID cannot be empty for Create operation")
	}
	if err := r.client.NewRef(bookingsPath+"/"+booking.ID).Set(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking '%s': %w", booking.ID, err)
	}
	return nil
}

// GetByID retrieves a booking by its id.
func (r *rtdbBookingRepository) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, errors.New("bookingID cannot be empty for GetByID operation")
	}
	var booking *models.Booking
	if err := r.client.NewRef(bookingsPath+"/"+bookingID).Get(ctx, &booking); err != nil {
		return nil, fmt.Errorf("failed to get booking '%s': %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking '%s': %w", bookingID, ErrNotFound)
	}
	booking.ID = bookingID
	return booking, nil
}

// ListByUserID returns the caller's bookings, newest first. Relies on the
// ".indexOn": "userId" rule on the bookings tree.
func (r *rtdbBookingRepository) ListByUserID(ctx context.Context, uid string) ([]*models.Booking, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for ListByUserID operation")
	}
	var nodes map[string]*models.Booking
	q := r.client.NewRef(bookingsPath).OrderByChild("userId").EqualTo(uid)
	if err := q.Get(ctx, &nodes); err != nil {
		return nil, fmt.Errorf("failed to list bookings for user '%s': %w", uid, err)
	}

	bookings := make([]*models.Booking, 0, len(nodes))
	for id, b := range nodes {
		if b == nil {
			continue
		}
		b.ID = id
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

// Delete removes a booking node. Ownership is checked in the service layer;
// deleting an absent node is reported as ErrNotFound there via GetByID.
func (r *rtdbBookingRepository) Delete(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return errors.New("bookingID cannot be empty for Delete operation")
	}
	if err := r.client.NewRef(bookingsPath+"/"+bookingID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete booking '%s': %w", bookingID, err)
	}
	return nil
}

// DeleteByUserID removes every booking owned by a user. Used by the
// account-deletion cascade.
func (r *rtdbBookingRepository) DeleteByUserID(ctx context.Context, uid string) error {
	bookings, err := r.ListByUserID(ctx, uid)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		if err := r.Delete(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}
