package sessions

import "time"

// Repo stores session state by session ID.
type Repo interface {
	Upsert(sessionID string, state State) error
	Get(sessionID string) (State, error)
	Delete(sessionID string) error
	DeleteExpired(before time.Time) (int, error)
}
