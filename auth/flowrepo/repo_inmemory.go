package flowrepo

import (
	"errors"
	"sync"

	apperrors "github.com/jrsteele09/eduflow/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu      sync.RWMutex
	flows   map[string]*FlowState // sessionID -> flow
	byState map[string]string     // state -> sessionID
}

var _ Repo = (*InMemoryRepo)(nil)

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		flows:   make(map[string]*FlowState),
		byState: make(map[string]string),
	}
}

// Upsert stores the flow for a session, replacing any earlier one
func (r *InMemoryRepo) Upsert(sessionID string, flow *FlowState) error {
	if sessionID == "" {
		return errors.New("sessionID cannot be empty")
	}
	if flow == nil {
		return errors.New("flow cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.flows[sessionID]; ok {
		delete(r.byState, old.State)
	}
	stored := *flow
	stored.SessionID = sessionID
	r.flows[sessionID] = &stored
	if stored.State != "" {
		r.byState[stored.State] = sessionID
	}
	return nil
}

func (r *InMemoryRepo) Get(sessionID string) (*FlowState, error) {
	if sessionID == "" {
		return nil, errors.New("sessionID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	flow, ok := r.flows[sessionID]
	if !ok {
		return nil, apperrors.ErrNoPendingFlow
	}
	copied := *flow
	return &copied, nil
}

func (r *InMemoryRepo) GetByState(state string) (*FlowState, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sessionID, ok := r.byState[state]
	if !ok {
		return nil, apperrors.ErrNoPendingFlow
	}
	copied := *r.flows[sessionID]
	return &copied, nil
}

func (r *InMemoryRepo) Delete(sessionID string) error {
	if sessionID == "" {
		return errors.New("sessionID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if flow, ok := r.flows[sessionID]; ok {
		delete(r.byState, flow.State)
		delete(r.flows, sessionID)
	}
	return nil
}
