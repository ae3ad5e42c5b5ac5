package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/db"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
	"github.com/oniks98/learn-lingo-sub000/pkg/cache"
)

const (
	teacherListCacheKey = "teachers:previews"
	teacherListCacheTTL = 10 * time.Minute
)

// teacherService implements the TeacherService interface. The preview list is
// the hottest read in the application, so it is served from cache; cache
// failures degrade to a direct database read.
type teacherService struct {
	teacherRepo db.TeacherRepository
	cache       cache.Cache
	logger      *zap.Logger
}

// NewTeacherService creates a new TeacherService instance.
func NewTeacherService(teacherRepo db.TeacherRepository, c cache.Cache, logger *zap.Logger) TeacherService {
	return &teacherService{teacherRepo: teacherRepo, cache: c, logger: logger}
}

// ListPreviews returns the list-page fields for every teacher.
func (s *teacherService) ListPreviews(ctx context.Context) ([]models.TeacherPreview, error) {
	if cached, err := s.cache.Get(teacherListCacheKey); err == nil && cached != "" {
		var previews []models.TeacherPreview
		if jsonErr := json.Unmarshal([]byte(cached), &previews); jsonErr == nil {
			return previews, nil
		}
		// Unparseable cache entry: drop it and fall through to the database.
		_ = s.cache.Delete(teacherListCacheKey)
	}

	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	previews := make([]models.TeacherPreview, 0, len(teachers))
	for _, t := range teachers {
		previews = append(previews, t.Preview())
	}

	if encoded, err := json.Marshal(previews); err == nil {
		if cacheErr := s.cache.Set(teacherListCacheKey, string(encoded), teacherListCacheTTL); cacheErr != nil {
			s.logger.Warn("Failed to cache teacher previews", zap.Error(cacheErr))
		}
	}
	return previews, nil
}

// GetByID returns the full teacher record.
func (s *teacherService) GetByID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrTeacherNotFound, teacherID)
		}
		return nil, fmt.Errorf("failed to get teacher '%s': %w", teacherID, err)
	}
	return teacher, nil
}

// GetExtra returns reviews for a teacher, localized when available.
func (s *teacherService) GetExtra(ctx context.Context, teacherID, locale string) ([]models.Review, error) {
	reviews, err := s.teacherRepo.GetReviews(ctx, teacherID, locale)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrTeacherNotFound, teacherID)
		}
		return nil, fmt.Errorf("failed to get reviews for teacher '%s': %w", teacherID, err)
	}
	return reviews, nil
}
