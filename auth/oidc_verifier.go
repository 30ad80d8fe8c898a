package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
)

// LazyVerifier discovers the issuer on first use and caches the verifier.
type LazyVerifier struct {
	issuer   string
	clientID string

	mu       sync.RWMutex
	verifier *oidc.IDTokenVerifier
}

var _ IDTokenVerifier = (*LazyVerifier)(nil)

func NewLazyVerifier(issuer, clientID string) *LazyVerifier {
	return &LazyVerifier{issuer: issuer, clientID: clientID}
}

func (v *LazyVerifier) Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error) {
	verifier, err := v.get(ctx)
	if err != nil {
		return nil, err
	}
	return verifier.Verify(ctx, rawIDToken)
}

func (v *LazyVerifier) get(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	v.mu.RLock()
	verifier := v.verifier
	v.mu.RUnlock()
	if verifier != nil {
		return verifier, nil
	}

	provider, err := oidc.NewProvider(ctx, v.issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}
	verifier = provider.Verifier(&oidc.Config{ClientID: v.clientID})

	v.mu.Lock()
	v.verifier = verifier
	v.mu.Unlock()
	return verifier, nil
}
