package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/oniks98/learn-lingo-sub000/internal/db"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// In-memory repository fakes implementing the db interfaces.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, uid string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uid]
	if !ok {
		return nil, fmt.Errorf("user '%s': %w", uid, db.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.UID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.UID]; !ok {
		return fmt.Errorf("user '%s': %w", user.UID, db.ErrNotFound)
	}
	copied := *user
	f.users[user.UID] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, uid)
	return nil
}

type fakeTeacherRepo struct {
	teachers map[string]*models.Teacher
}

func newFakeTeacherRepo(teachers ...*models.Teacher) *fakeTeacherRepo {
	m := make(map[string]*models.Teacher)
	for _, t := range teachers {
		m[t.ID] = t
	}
	return &fakeTeacherRepo{teachers: m}
}

func (f *fakeTeacherRepo) List(context.Context) ([]*models.Teacher, error) {
	out := make([]*models.Teacher, 0, len(f.teachers))
	for _, t := range f.teachers {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTeacherRepo) GetByID(_ context.Context, id string) (*models.Teacher, error) {
	t, ok := f.teachers[id]
	if !ok {
		return nil, fmt.Errorf("teacher '%s': %w", id, db.ErrNotFound)
	}
	return t, nil
}

func (f *fakeTeacherRepo) GetReviews(ctx context.Context, id, _ string) ([]models.Review, error) {
	t, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Reviews, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	err      error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking '%s': %w", id, db.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) ListByUserID(_ context.Context, uid string) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.UserID == uid {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) DeleteByUserID(ctx context.Context, uid string) error {
	bookings, _ := f.ListByUserID(ctx, uid)
	for _, b := range bookings {
		_ = f.Delete(ctx, b.ID)
	}
	return nil
}

func (f *fakeBookingRepo) count(uid string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.bookings {
		if b.UserID == uid {
			n++
		}
	}
	return n
}

type fakeFavoriteRepo struct {
	mu        sync.Mutex
	favorites map[string]map[string]bool // uid → teacherID → set
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[string]map[string]bool)}
}

func (f *fakeFavoriteRepo) List(_ context.Context, uid string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0)
	for id, set := range f.favorites[uid] {
		if set {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepo) Add(_ context.Context, uid, teacherID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.favorites[uid] == nil {
		f.favorites[uid] = make(map[string]bool)
	}
	f.favorites[uid][teacherID] = true
	return nil
}

func (f *fakeFavoriteRepo) Remove(_ context.Context, uid, teacherID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.favorites[uid][teacherID] {
		return fmt.Errorf("favorite '%s': %w", teacherID, db.ErrNotFound)
	}
	delete(f.favorites[uid], teacherID)
	return nil
}

func (f *fakeFavoriteRepo) RemoveAll(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.favorites, uid)
	return nil
}

type fakeAuthDeleter struct {
	deleted []string
	err     error
}

func (f *fakeAuthDeleter) DeleteUser(_ context.Context, uid string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakeMailDispatcher struct {
	sent []string // booking ids
	err  error
}

func (f *fakeMailDispatcher) DispatchBookingConfirmation(_ context.Context, b *models.Booking, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, b.ID)
	return nil
}

// errNotRecoverable is a stand-in for arbitrary repo failures.
var errNotRecoverable = errors.New("backend exploded")
