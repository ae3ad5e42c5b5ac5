package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/db"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// userService implements the UserService interface.
type userService struct {
	userRepo     db.UserRepository
	bookingRepo  db.BookingRepository
	favoriteRepo db.FavoriteRepository
	authDeleter  AuthAccountDeleter
	logger       *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(
	userRepo db.UserRepository,
	bookingRepo db.BookingRepository,
	favoriteRepo db.FavoriteRepository,
	authDeleter AuthAccountDeleter,
	logger *zap.Logger,
) UserService {
	return &userService{
		userRepo:     userRepo,
		bookingRepo:  bookingRepo,
		favoriteRepo: favoriteRepo,
		authDeleter:  authDeleter,
		logger:       logger,
	}
}

// Sync upserts the canonical user record from verified token claims. A new
// record is created on first sight; on subsequent calls the stored record is
// refreshed when the provider-side email or verification state moved.
func (s *userService) Sync(ctx context.Context, claims TokenClaims) (*models.User, error) {
	if claims.UID == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UID)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("failed to get user '%s': %w", claims.UID, err)
		}

		username := claims.Name
		if username == "" {
			username = claims.Email
		}
		provider := claims.Provider
		if provider == "" {
			provider = models.ProviderPassword
		}
		newUser := &models.User{
			UID:           claims.UID,
			Email:         claims.Email,
			Username:      username,
			EmailVerified: claims.EmailVerified,
			Provider:      provider,
			PhotoURL:      claims.PhotoURL,
			CreatedAt:     time.Now().UTC(),
		}
		if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
			return nil, fmt.Errorf("failed to create user '%s': %w", claims.UID, createErr)
		}
		s.logger.Info("User record created",
			zap.String("uid", claims.UID),
			zap.String("provider", provider))
		return newUser, nil
	}

	changed := false
	if claims.Email != "" && user.Email != claims.Email {
		user.Email = claims.Email
		changed = true
	}
	if claims.EmailVerified != user.EmailVerified {
		user.EmailVerified = claims.EmailVerified
		changed = true
	}
	if claims.PhotoURL != "" && user.PhotoURL != claims.PhotoURL {
		user.PhotoURL = claims.PhotoURL
		changed = true
	}
	if changed {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to refresh user '%s': %w", claims.UID, err)
		}
	}
	return user, nil
}

// GetByID retrieves a user by their UID.
func (s *userService) GetByID(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: uid '%s'", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", uid, err)
	}
	return user, nil
}

// UpdateUsername changes the display name on the user record.
func (s *userService) UpdateUsername(ctx context.Context, uid, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	user, err := s.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	user.Username = username
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update username for '%s': %w", uid, err)
	}
	return user, nil
}

// DeleteAccount removes all traces of a user: bookings first, then the user
// node (favorites live under it), then the identity-provider account. The
// order matters: if the provider deletion fails the data is already gone and
// the auth record can be retried, never the other way around.
func (s *userService) DeleteAccount(ctx context.Context, uid string) error {
	if _, err := s.GetByID(ctx, uid); err != nil {
		return err
	}

	if err := s.bookingRepo.DeleteByUserID(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete bookings for '%s': %w", uid, err)
	}
	if err := s.favoriteRepo.RemoveAll(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete favorites for '%s': %w", uid, err)
	}
	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete user record '%s': %w", uid, err)
	}
	if err := s.authDeleter.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete auth account '%s': %w", uid, err)
	}

	s.logger.Info("Account deleted", zap.String("uid", uid))
	return nil
}
