package sessions

import (
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/eduflow/internal/errors"
)

// InMemoryRepo is a process-local session store.
type InMemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]State
	now      func() time.Time
}

var _ Repo = (*InMemoryRepo)(nil)

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		sessions: make(map[string]State),
		now:      time.Now,
	}
}

// Upsert creates or replaces a session, stamping its timestamps.
func (r *InMemoryRepo) Upsert(sessionID string, state State) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if existing, ok := r.sessions[sessionID]; ok && state.CreatedAt.IsZero() {
		state.CreatedAt = existing.CreatedAt
	}
	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}
	state.UpdatedAt = now
	r.sessions[sessionID] = state
	return nil
}

func (r *InMemoryRepo) Get(sessionID string) (State, error) {
	if sessionID == "" {
		return State{}, fmt.Errorf("sessionID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.sessions[sessionID]
	if !ok {
		return State{}, apperrors.ErrSessionNotFound
	}
	return state, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (r *InMemoryRepo) Delete(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

// DeleteExpired drops sessions not updated since before.
func (r *InMemoryRepo) DeleteExpired(before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, state := range r.sessions {
		if state.UpdatedAt.Before(before) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
