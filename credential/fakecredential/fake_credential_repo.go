package fakecredential

import (
	"context"
	"sync"

	"github.com/jrsteele09/eduflow/credential"
	apperrors "github.com/jrsteele09/eduflow/internal/errors"
)

var _ credential.Repo = (*FakeCredentialRepo)(nil)

// FakeCredentialRepo keeps the credential in memory and counts writes.
type FakeCredentialRepo struct {
	lock    sync.RWMutex
	current *credential.Credential
	LoadErr error
	Saves   int
	Deletes int
}

func NewFakeCredentialRepo() *FakeCredentialRepo {
	return &FakeCredentialRepo{}
}

func (r *FakeCredentialRepo) Load(_ context.Context) (*credential.Credential, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	if r.current == nil {
		return nil, apperrors.ErrNotFound
	}
	c := *r.current
	return &c, nil
}

func (r *FakeCredentialRepo) Save(_ context.Context, c *credential.Credential) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	stored := *c
	r.current = &stored
	r.Saves++
	return nil
}

func (r *FakeCredentialRepo) Delete(_ context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.current = nil
	r.LoadErr = nil
	r.Deletes++
	return nil
}
