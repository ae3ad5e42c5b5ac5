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

const teachersPath = "teachers"

// rtdbTeacherRepository implements TeacherRepository on the Realtime Database.
// The teachers tree is curated out of band; this repository never writes.
type rtdbTeacherRepository struct {
	client *db.Client
}

// NewTeacherRepository creates a new Realtime Database backed TeacherRepository.
func NewTeacherRepository(client *db.Client) TeacherRepository {
	if client == nil {
		log.Fatal("Realtime Database client is not initialized for TeacherRepository.")
	}
	return &rtdbTeacherRepository{client: client}
}

// List returns all teacher records ordered by id for a stable listing.
func (r *rtdbTeacherRepository) List(ctx context.Context) ([]*models.Teacher, error) {
	var nodes map[string]*models.Teacher
	if err := r.client.NewRef(teachersPath).Get(ctx, &nodes); err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}

	teachers := make([]*models.Teacher, 0, len(nodes))
	for id, t := range nodes {
		if t == nil {
			continue
		}
		t.ID = id
		teachers = append(teachers, t)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })
	return teachers, nil
}

// GetByID retrieves a single teacher record.
func (r *rtdbTeacherRepository) GetByID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	if teacherID == "" {
		return nil, errors.New("teacherID cannot be empty for GetByID operation")
	}
	var teacher *models.Teacher
	if err := r.client.NewRef(teachersPath+"/"+teacherID).Get(ctx, &teacher); err != nil {
		return nil, fmt.Errorf("failed to get teacher '%s': %w", teacherID, err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("teacher '%s': %w", teacherID, ErrNotFound)
	}
	teacher.ID = teacherID
	return teacher, nil
}

// GetReviews returns the reviews attached to a teacher. Localized review sets,
// when present, live under reviews_{locale}; the default reviews list is the
// fallback.
func (r *rtdbTeacherRepository) GetReviews(ctx context.Context, teacherID, locale string) ([]models.Review, error) {
	if teacherID == "" {
		return nil, errors.New("teacherID cannot be empty for GetReviews operation")
	}

	if locale != "" && locale != "en" {
		var localized []models.Review
		path := fmt.Sprintf("%s/%s/reviews_%s", teachersPath, teacherID, locale)
		if err := r.client.NewRef(path).Get(ctx, &localized); err != nil {
			return nil, fmt.Errorf("failed to get localized reviews for teacher '%s': %w", teacherID, err)
		}
		if len(localized) > 0 {
			return localized, nil
		}
	}

	teacher, err := r.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return teacher.Reviews, nil
}
