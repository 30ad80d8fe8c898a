package flowrepo

import "time"

// FlowState is a pending authorization for one browser session.
type FlowState struct {
	SessionID    string
	State        string
	CodeVerifier string
	AuthURL      string
	CreatedAt    time.Time
}

type Repo interface {
	Upsert(sessionID string, flow *FlowState) error
	Get(sessionID string) (*FlowState, error)
	GetByState(state string) (*FlowState, error)
	Delete(sessionID string) error
}
