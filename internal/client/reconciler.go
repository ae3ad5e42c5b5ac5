package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// TokenSource abstracts the auth SDK's local user object: a forced reload
// plus a fresh ID token. An empty token with nil error means no local session.
type TokenSource interface {
	Refresh(ctx context.Context) (idToken string, err error)
}

// Navigator receives the booking navigation signal when a deferred booking
// action is replayed.
type Navigator interface {
	OpenBooking(teacherID string)
}

// Reconciler keeps the single source of truth for "is there a confirmed,
// email-verified user". It reconciles the SDK session, the server-side sync
// endpoint, and the typed cache entry under KeyUser. An unverified account
// reports as unauthenticated even when the SDK holds a live session.
type Reconciler struct {
	tokens  TokenSource
	api     API
	cache   *Cache
	pending PendingStore
	nav     Navigator

	group singleflight.Group
	mu    sync.Mutex
	now   func() time.Time
}

// NewReconciler wires the reconciler. nav may be nil when no booking
// navigation target exists (e.g. headless tests).
func NewReconciler(tokens TokenSource, api API, cache *Cache, pending PendingStore, nav Navigator) *Reconciler {
	return &Reconciler{
		tokens:  tokens,
		api:     api,
		cache:   cache,
		pending: pending,
		nav:     nav,
		now:     time.Now,
	}
}

// Sync reconciles the auth state. Concurrent callers share one in-flight
// synchronization and receive the same outcome; no duplicate network calls
// are issued. The returned user is nil when there is no confirmed,
// email-verified session.
func (r *Reconciler) Sync(ctx context.Context) (*models.User, error) {
	v, err, _ := r.group.Do("sync", func() (interface{}, error) {
		return r.sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*models.User), nil
}

func (r *Reconciler) sync(ctx context.Context) (*models.User, error) {
	idToken, err := r.tokens.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	if idToken == "" {
		// No SDK session at all.
		r.cache.Invalidate(KeyUser)
		return nil, nil
	}

	user, err := r.api.SyncUser(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("sync user: %w", err)
	}

	if !user.EmailVerified {
		// Unverified accounts have no application-level identity.
		r.cache.Invalidate(KeyUser)
		return nil, nil
	}

	r.cache.Set(KeyUser, user)
	if replayErr := r.replayPending(ctx, idToken); replayErr != nil {
		return user, replayErr
	}
	return user, nil
}

// replayPending resumes a deferred action after the user became verified. The
// record is deleted only after a successful replay; a network-class failure
// retains it for a later retry, anything else discards it and surfaces the
// error.
func (r *Reconciler) replayPending(ctx context.Context, idToken string) error {
	action, err := r.pending.Load()
	if err != nil {
		return fmt.Errorf("load pending action: %w", err)
	}
	if action == nil {
		return nil
	}
	if action.Expired(r.now()) {
		// Too old to honor; discard unread.
		return r.pending.Clear()
	}

	switch action.Type {
	case ActionFavorite:
		if err := r.api.AddFavorite(ctx, idToken, action.TeacherID); err != nil {
			if errors.Is(err, ErrNetwork) {
				return nil // keep the record for a later retry
			}
			_ = r.pending.Clear()
			return fmt.Errorf("replay favorite: %w", err)
		}
		r.cache.Invalidate(KeyFavorites)
	case ActionBooking:
		if r.nav != nil {
			r.nav.OpenBooking(action.TeacherID)
		}
	default:
		// Unknown type, nothing to replay.
	}
	return r.pending.Clear()
}

// Defer records an intended action for replay after the visitor signs up and
// verifies their email.
func (r *Reconciler) Defer(actionType ActionType, teacherID string) error {
	return r.pending.Save(&PendingAction{
		Type:      actionType,
		TeacherID: teacherID,
		Timestamp: r.now(),
	})
}

// SignOut clears the user cache entry, the favorites entries, and any pending
// action. The three invalidations happen under one lock so no observer can
// see a signed-out state with another user's favorites still cached.
func (r *Reconciler) SignOut() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Invalidate(KeyUser)
	r.cache.Invalidate(KeyFavorites)
	return r.pending.Clear()
}
