package api

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"github.com/oniks98/learn-lingo-sub000/internal/core"
	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// Fake core services backing handler tests.

type fakeAccounts struct {
	record    *auth.UserRecord
	createErr error
	getErr    error
}

func (f *fakeAccounts) CreateUser(context.Context, *auth.UserToCreate) (*auth.UserRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.record, nil
}

func (f *fakeAccounts) GetUser(context.Context, string) (*auth.UserRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.record, nil
}

func authRecord(uid, email, name string, verified bool) *auth.UserRecord {
	return &auth.UserRecord{
		UserInfo:      &auth.UserInfo{UID: uid, Email: email, DisplayName: name},
		EmailVerified: verified,
	}
}

type fakeUserService struct {
	users     map[string]*models.User
	syncErr   error
	deleteErr error
	deleted   []string
}

func newFakeUserService(users ...*models.User) *fakeUserService {
	m := make(map[string]*models.User)
	for _, u := range users {
		m[u.UID] = u
	}
	return &fakeUserService{users: m}
}

func (f *fakeUserService) Sync(_ context.Context, claims core.TokenClaims) (*models.User, error) {
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	user, ok := f.users[claims.UID]
	if !ok {
		username := claims.Name
		if username == "" {
			username = claims.Email
		}
		user = &models.User{
			UID:           claims.UID,
			Email:         claims.Email,
			Username:      username,
			Provider:      claims.Provider,
			EmailVerified: claims.EmailVerified,
		}
		f.users[claims.UID] = user
	}
	return user, nil
}

func (f *fakeUserService) GetByID(_ context.Context, uid string) (*models.User, error) {
	user, ok := f.users[uid]
	if !ok {
		return nil, fmt.Errorf("%w: uid '%s'", core.ErrUserNotFound, uid)
	}
	return user, nil
}

func (f *fakeUserService) UpdateUsername(_ context.Context, uid, username string) (*models.User, error) {
	user, ok := f.users[uid]
	if !ok {
		return nil, fmt.Errorf("%w: uid '%s'", core.ErrUserNotFound, uid)
	}
	user.Username = username
	return user, nil
}

func (f *fakeUserService) DeleteAccount(_ context.Context, uid string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.users[uid]; !ok {
		return fmt.Errorf("%w: uid '%s'", core.ErrUserNotFound, uid)
	}
	delete(f.users, uid)
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakeBookingService struct {
	booking   *models.Booking
	emailSent bool
	createErr error
	bookings  []*models.Booking
	deleteErr error
	deleted   []string
}

func (f *fakeBookingService) Create(_ context.Context, uid string, req models.CreateBookingRequest) (*models.Booking, bool, error) {
	if f.createErr != nil {
		return nil, false, f.createErr
	}
	return f.booking, f.emailSent, nil
}

func (f *fakeBookingService) ListForUser(context.Context, string) ([]*models.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingService) Delete(_ context.Context, _, bookingID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, bookingID)
	return nil
}

type fakeFavoriteService struct {
	favorites []string
	addErr    error
	removeErr error
	added     []string
	removed   []string
}

func (f *fakeFavoriteService) List(context.Context, string) ([]string, error) {
	return f.favorites, nil
}

func (f *fakeFavoriteService) Add(_ context.Context, _, teacherID string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, teacherID)
	return nil
}

func (f *fakeFavoriteService) Remove(_ context.Context, _, teacherID string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, teacherID)
	return nil
}

type fakeTeacherService struct {
	previews []models.TeacherPreview
	teacher  *models.Teacher
	reviews  []models.Review
	err      error
}

func (f *fakeTeacherService) ListPreviews(context.Context) ([]models.TeacherPreview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.previews, nil
}

func (f *fakeTeacherService) GetByID(context.Context, string) (*models.Teacher, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.teacher, nil
}

func (f *fakeTeacherService) GetExtra(context.Context, string, string) ([]models.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reviews, nil
}

type fakeRatesService struct {
	rate float64
	err  error
}

func (f *fakeRatesService) GetRate(context.Context, string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.rate, nil
}

func (f *fakeRatesService) DisplayPrice(_ context.Context, priceUSD float64, currency string) string {
	return core.FormatPrice(priceUSD, currency, f.rate)
}

var errBackend = errors.New("backend exploded")
