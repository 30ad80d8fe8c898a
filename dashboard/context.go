package dashboard

import (
	"time"

	"github.com/jrsteele09/eduflow/credential"
	"github.com/jrsteele09/eduflow/sessions"
)

// Context is everything one render reads. It is built per request and never mutated;
// the With methods return modified copies.
type Context struct {
	SessionID  string
	Credential *credential.Credential
	Session    sessions.State
	Now        time.Time
}

func NewContext(sessionID string, cred *credential.Credential, state sessions.State, now time.Time) Context {
	return Context{SessionID: sessionID, Credential: cred, Session: state, Now: now}
}

func (c Context) WithSession(state sessions.State) Context {
	c.Session = state
	return c
}

// WithOutcome carries a non-empty outcome to the next render as a flash message.
func (c Context) WithOutcome(o Outcome) Context {
	if o.Kind == OutcomeNone {
		return c
	}
	c.Session = c.Session.WithFlash(o.flashKind(), o.Message)
	return c
}

// Email is the signed-in identity as recorded with the credential.
func (c Context) Email() string {
	if c.Credential == nil {
		return ""
	}
	return c.Credential.Identity.Email
}
