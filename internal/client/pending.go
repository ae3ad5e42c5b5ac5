package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"
)

// ActionType names the deferred actions a visitor can queue before
// authenticating.
type ActionType string

// Deferred action types.
const (
	ActionFavorite ActionType = "favorite"
	ActionBooking  ActionType = "booking"
)

// PendingActionTTL is how long a deferred action stays replayable. Anything
// older is discarded unread.
const PendingActionTTL = 24 * time.Hour

// PendingAction is a deferred favorite/booking request awaiting user
// verification.
type PendingAction struct {
	Type      ActionType `json:"type"`
	TeacherID string     `json:"teacherId"`
	Timestamp time.Time  `json:"timestamp"`
}

// Expired reports whether the action is older than PendingActionTTL at now.
func (p *PendingAction) Expired(now time.Time) bool {
	return now.Sub(p.Timestamp) > PendingActionTTL
}

// PendingStore persists at most one pending action.
type PendingStore interface {
	// Load returns the stored action, or nil when none is stored.
	Load() (*PendingAction, error)
	Save(action *PendingAction) error
	Clear() error
}

// MemoryPendingStore keeps the pending action in process memory.
type MemoryPendingStore struct {
	mu     sync.Mutex
	action *PendingAction
}

// NewMemoryPendingStore creates an empty MemoryPendingStore.
func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{}
}

// Load returns the stored action, or nil.
func (s *MemoryPendingStore) Load() (*PendingAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.action == nil {
		return nil, nil
	}
	copied := *s.action
	return &copied, nil
}

// Save stores the action, replacing any previous one.
func (s *MemoryPendingStore) Save(action *PendingAction) error {
	if action == nil {
		return errors.New("pending action cannot be nil")
	}
	s.mu.Lock()
	copied := *action
	s.action = &copied
	s.mu.Unlock()
	return nil
}

// Clear drops the stored action.
func (s *MemoryPendingStore) Clear() error {
	s.mu.Lock()
	s.action = nil
	s.mu.Unlock()
	return nil
}

// FilePendingStore persists the pending action as a JSON file, the durable
// analog of the browser's localStorage record.
type FilePendingStore struct {
	mu   sync.Mutex
	path string
}

// NewFilePendingStore creates a store backed by the given file path.
func NewFilePendingStore(path string) *FilePendingStore {
	return &FilePendingStore{path: path}
}

// Load reads the stored action; a missing file means no pending action.
func (s *FilePendingStore) Load() (*PendingAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var action PendingAction
	if err := json.Unmarshal(data, &action); err != nil {
		// A corrupt record is unreplayable; treat it as absent.
		return nil, nil
	}
	return &action, nil
}

// Save writes the action to disk.
func (s *FilePendingStore) Save(action *PendingAction) error {
	if action == nil {
		return errors.New("pending action cannot be nil")
	}
	data, err := json.Marshal(action)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the file; clearing an absent record is a no-op.
func (s *FilePendingStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
