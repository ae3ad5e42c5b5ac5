package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"firebase.google.com/go/v4/db"

	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

const usersPath = "users"

// rtdbUserRepository implements UserRepository on the Realtime Database.
type rtdbUserRepository struct {
	client *db.Client
}

// NewUserRepository creates a new Realtime Database backed UserRepository.
func NewUserRepository(client *db.Client) UserRepository {
	if client == nil {
		log.Fatal("Realtime Database client is not initialized for UserRepository.")
	}
	return &rtdbUserRepository{client: client}
}

func (r *rtdbUserRepository) ref(uid string) *db.Ref {
	return r.client.NewRef(usersPath + "/" + uid)
}

// GetByID retrieves a user node by its Firebase Auth UID.
func (r *rtdbUserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByID operation")
	}
	var user *models.User
	if err := r.ref(uid).Get(ctx, &user); err != nil {
		return nil, fmt.Errorf("failed to get user '%s': %w", uid, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user '%s': %w", uid, ErrNotFound)
	}
	user.UID = uid
	return user, nil
}

// Create writes a new user node. The favorites subtree is intentionally not
// part of the user struct; it lives under the same node but is managed by the
// FavoriteRepository.
func (r *rtdbUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Create operation")
	}
	if err := r.ref(user.UID).Set(ctx, user); err != nil {
		return fmt.Errorf("failed to create user '%s': %w", user.UID, err)
	}
	return nil
}

// Update overwrites mutable profile fields of an existing user node. A partial
// update keeps the favorites subtree untouched.
func (r *rtdbUserRepository) Update(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Update operation")
	}
	fields := map[string]interface{}{
		"email":         user.Email,
		"username":      user.Username,
		"emailVerified": user.EmailVerified,
		"provider":      user.Provider,
	}
	if user.PhotoURL != "" {
		fields["photoURL"] = user.PhotoURL
	}
	if err := r.ref(user.UID).Update(ctx, fields); err != nil {
		return fmt.Errorf("failed to update user '%s': %w", user.UID, err)
	}
	return nil
}

// Delete removes the whole user node, favorites included.
func (r *rtdbUserRepository) Delete(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.New("uid cannot be empty for Delete operation")
	}
	if err := r.ref(uid).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete user '%s': %w", uid, err)
	}
	return nil
}
