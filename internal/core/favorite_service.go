package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/db"
)

// favoriteService implements the FavoriteService interface. Adding then
// removing a favorite returns the set to its original state; removing an
// absent favorite is ErrFavoriteNotFound with no side effects.
type favoriteService struct {
	favoriteRepo db.FavoriteRepository
	teacherRepo  db.TeacherRepository
	logger       *zap.Logger
}

// NewFavoriteService creates a new FavoriteService instance.
func NewFavoriteService(favoriteRepo db.FavoriteRepository, teacherRepo db.TeacherRepository, logger *zap.Logger) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, teacherRepo: teacherRepo, logger: logger}
}

// List returns the teacher ids the user has favorited.
func (s *favoriteService) List(ctx context.Context, uid string) ([]string, error) {
	ids, err := s.favoriteRepo.List(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for '%s': %w", uid, err)
	}
	return ids, nil
}

// Add sets the favorite flag after confirming the teacher exists.
func (s *favoriteService) Add(ctx context.Context, uid, teacherID string) error {
	if teacherID == "" {
		return fmt.Errorf("%w: teacherId is required", ErrValidation)
	}
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: id '%s'", ErrTeacherNotFound, teacherID)
		}
		return fmt.Errorf("failed to check teacher '%s': %w", teacherID, err)
	}
	if err := s.favoriteRepo.Add(ctx, uid, teacherID); err != nil {
		return fmt.Errorf("failed to add favorite '%s' for '%s': %w", teacherID, uid, err)
	}
	return nil
}

// Remove clears the favorite flag.
func (s *favoriteService) Remove(ctx context.Context, uid, teacherID string) error {
	if teacherID == "" {
		return fmt.Errorf("%w: teacherId is required", ErrValidation)
	}
	if err := s.favoriteRepo.Remove(ctx, uid, teacherID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: teacher '%s'", ErrFavoriteNotFound, teacherID)
		}
		return fmt.Errorf("failed to remove favorite '%s' for '%s': %w", teacherID, uid, err)
	}
	return nil
}
