package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/db"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// bookingService implements the BookingService interface.
type bookingService struct {
	bookingRepo db.BookingRepository
	teacherRepo db.TeacherRepository
	mail        MailDispatcher
	logger      *zap.Logger
	now         func() time.Time
}

// NewBookingService creates a new BookingService instance. mail may be nil
// when no email pipeline is configured.
func NewBookingService(
	bookingRepo db.BookingRepository,
	teacherRepo db.TeacherRepository,
	mail MailDispatcher,
	logger *zap.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		teacherRepo: teacherRepo,
		mail:        mail,
		logger:      logger,
		now:         time.Now,
	}
}

// Create validates the request, verifies the teacher exists, stores the
// booking, and dispatches a best-effort confirmation email. An email failure
// degrades to emailSent=false; the booking is never rolled back for it.
func (s *bookingService) Create(ctx context.Context, uid string, req models.CreateBookingRequest) (*models.Booking, bool, error) {
	if uid == "" {
		return nil, false, fmt.Errorf("%w: caller identity is required", ErrValidation)
	}
	if req.TeacherID == "" {
		return nil, false, fmt.Errorf("%w: teacherId is required", ErrValidation)
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Reason == "" {
		return nil, false, fmt.Errorf("%w: name, email, phone and reason are required", ErrValidation)
	}

	bookingDate, err := time.Parse(time.RFC3339, req.BookingDate)
	if err != nil {
		return nil, false, fmt.Errorf("%w: bookingDate must be RFC 3339", ErrValidation)
	}
	if !bookingDate.After(s.now()) {
		return nil, false, fmt.Errorf("%w: bookingDate must be in the future", ErrValidation)
	}

	teacher, err := s.teacherRepo.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, false, fmt.Errorf("%w: id '%s'", ErrTeacherNotFound, req.TeacherID)
		}
		return nil, false, fmt.Errorf("failed to check teacher '%s': %w", req.TeacherID, err)
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		UserID:      uid,
		TeacherID:   req.TeacherID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Reason:      req.Reason,
		BookingDate: bookingDate.UTC(),
		Comment:     req.Comment,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, false, fmt.Errorf("failed to create booking: %w", err)
	}

	emailSent := false
	if s.mail != nil {
		teacherName := teacher.Name + " " + teacher.Surname
		if mailErr := s.mail.DispatchBookingConfirmation(ctx, booking, teacherName); mailErr != nil {
			// Degraded success: booked without confirmation email.
			s.logger.Warn("Booking confirmation email failed",
				zap.String("booking_id", booking.ID),
				zap.Error(mailErr))
		} else {
			emailSent = true
		}
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("uid", uid),
		zap.String("teacher_id", req.TeacherID),
		zap.Bool("email_sent", emailSent))
	return booking, emailSent, nil
}

// ListForUser returns the caller's own bookings.
func (s *bookingService) ListForUser(ctx context.Context, uid string) ([]*models.Booking, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: caller identity is required", ErrValidation)
	}
	bookings, err := s.bookingRepo.ListByUserID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for '%s': %w", uid, err)
	}
	return bookings, nil
}

// Delete removes a booking. The operation succeeds iff the booking belongs to
// the caller; a mismatch returns ErrForbidden and leaves the record in place.
func (s *bookingService) Delete(ctx context.Context, uid, bookingID string) error {
	if bookingID == "" {
		return fmt.Errorf("%w: booking id is required", ErrValidation)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: id '%s'", ErrBookingNotFound, bookingID)
		}
		return fmt.Errorf("failed to get booking '%s': %w", bookingID, err)
	}
	if booking.UserID != uid {
		return fmt.Errorf("%w: booking '%s' belongs to another user", ErrForbidden, bookingID)
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("failed to delete booking '%s': %w", bookingID, err)
	}
	s.logger.Info("Booking deleted", zap.String("booking_id", bookingID), zap.String("uid", uid))
	return nil
}
