package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"firebase.google.com/go/v4/db"
)

// rtdbFavoriteRepository implements FavoriteRepository on the Realtime
// Database. A favorite is the boolean flag users/{uid}/favorites/{teacherId};
// per-key last-write-wins semantics of the database is the only concurrency
// control on this path.
type rtdbFavoriteRepository struct {
	client *db.Client
}

// NewFavoriteRepository creates a new Realtime Database backed FavoriteRepository.
func NewFavoriteRepository(client *db.Client) FavoriteRepository {
	if client == nil {
		log.Fatal("Realtime Database client is not initialized for FavoriteRepository.")
	}
	return &rtdbFavoriteRepository{client: client}
}

func (r *rtdbFavoriteRepository) ref(uid string) *db.Ref {
	return r.client.NewRef(usersPath + "/" + uid + "/favorites")
}

// List returns the teacher ids the user has favorited, sorted for stable output.
func (r *rtdbFavoriteRepository) List(ctx context.Context, uid string) ([]string, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for List operation")
	}
	var flags map[string]bool
	if err := r.ref(uid).Get(ctx, &flags); err != nil {
		return nil, fmt.Errorf("failed to list favorites for user '%s': %w", uid, err)
	}
	ids := make([]string, 0, len(flags))
	for teacherID, set := range flags {
		if set {
			ids = append(ids, teacherID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Add sets the favorite flag. Setting an already-set flag is a no-op write.
func (r *rtdbFavoriteRepository) Add(ctx context.Context, uid, teacherID string) error {
	if uid == "" || teacherID == "" {
		return errors.New("uid and teacherID cannot be empty for Add operation")
	}
	if err := r.ref(uid).Child(teacherID).Set(ctx, true); err != nil {
		return fmt.Errorf("failed to add favorite '%s' for user '%s': %w", teacherID, uid, err)
	}
	return nil
}

// Remove clears the favorite flag. Removing an absent flag returns ErrNotFound
// without issuing a write.
func (r *rtdbFavoriteRepository) Remove(ctx context.Context, uid, teacherID string) error {
	if uid == "" || teacherID == "" {
		return errors.New("uid and teacherID cannot be empty for Remove operation")
	}
	child := r.ref(uid).Child(teacherID)

	var set bool
	if err := child.Get(ctx, &set); err != nil {
		return fmt.Errorf("failed to read favorite '%s' for user '%s': %w", teacherID, uid, err)
	}
	if !set {
		return fmt.Errorf("favorite '%s' for user '%s': %w", teacherID, uid, ErrNotFound)
	}
	if err := child.Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove favorite '%s' for user '%s': %w", teacherID, uid, err)
	}
	return nil
}

// RemoveAll drops the whole favorites subtree. Used by the account-deletion cascade.
func (r *rtdbFavoriteRepository) RemoveAll(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.New("uid cannot be empty for RemoveAll operation")
	}
	if err := r.ref(uid).Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove favorites for user '%s': %w", uid, err)
	}
	return nil
}
