package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/eduflow/auth/flowrepo"
	"github.com/jrsteele09/eduflow/credential"
	apperrors "github.com/jrsteele09/eduflow/internal/errors"
	"github.com/jrsteele09/eduflow/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// IdentityProvider is the OAuth side of the gate. *oauth2.Config satisfies it.
type IdentityProvider interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
	TokenSource(ctx context.Context, t *oauth2.Token) oauth2.TokenSource
}

// IDTokenVerifier checks an ID token returned with the access token.
// *oidc.IDTokenVerifier satisfies it.
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

type GateConfig struct {
	Provider    IdentityProvider
	Credentials credential.Repo
	Flows       flowrepo.Repo
	Scopes      []string

	// Optional
	Verifier   IDTokenVerifier
	RevokeURL  string
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

// Gate owns the authorization-code exchange and the persisted credential.
type Gate struct {
	provider   IdentityProvider
	creds      credential.Repo
	flows      flowrepo.Repo
	scopes     []string
	verifier   IDTokenVerifier
	revokeURL  string
	httpClient *http.Client
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewGate(c GateConfig) (*Gate, error) {
	if c.Provider == nil {
		return nil, fmt.Errorf("[auth NewGate] identity provider is required")
	}
	if c.Credentials == nil {
		return nil, fmt.Errorf("[auth NewGate] credential repo is required")
	}
	if c.Flows == nil {
		return nil, fmt.Errorf("[auth NewGate] flow repo is required")
	}
	g := &Gate{
		provider:   c.Provider,
		creds:      c.Credentials,
		flows:      c.Flows,
		scopes:     append([]string(nil), c.Scopes...),
		verifier:   c.Verifier,
		revokeURL:  c.RevokeURL,
		httpClient: c.HTTPClient,
		metrics:    c.Metrics,
		now:        c.Now,
	}
	if g.httpClient == nil {
		g.httpClient = http.DefaultClient
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g, nil
}

// Status reports the sign-in state for a browser session.
func (g *Gate) Status(ctx context.Context, sessionID string) State {
	if _, err := g.Check(ctx); err == nil {
		return StateAuthenticated
	}
	if sessionID == "" {
		return StateUnauthenticated
	}
	if _, err := g.flows.Get(sessionID); err == nil {
		return StateAwaitingCode
	}
	return StateUnauthenticated
}

// Begin starts (or resumes) an authorization for the session and returns the URL to visit.
func (g *Gate) Begin(sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("sessionID is required")
	}
	if flow, err := g.flows.Get(sessionID); err == nil && flow.AuthURL != "" {
		return flow.AuthURL, nil
	}

	state := generateRandomString(24)
	verifier := oauth2.GenerateVerifier()
	authURL := g.provider.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(verifier),
	)

	err := g.flows.Upsert(sessionID, &flowrepo.FlowState{
		State:        state,
		CodeVerifier: verifier,
		AuthURL:      authURL,
		CreatedAt:    g.now(),
	})
	if err != nil {
		return "", fmt.Errorf("store authorization flow: %w", err)
	}
	return authURL, nil
}

// Exchange trades a pasted authorization code for a credential and persists it,
// replacing whatever credential was stored before.
func (g *Gate) Exchange(ctx context.Context, sessionID, code string) (*credential.Credential, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		g.metrics.AuthExchange("rejected")
		return nil, apperrors.Wrapf(apperrors.ErrAuthExchange, "authorization code is required")
	}

	var opts []oauth2.AuthCodeOption
	if flow, err := g.flows.Get(sessionID); err == nil && flow.CodeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(flow.CodeVerifier))
	}

	token, err := g.provider.Exchange(ctx, code, opts...)
	if err != nil {
		g.metrics.AuthExchange("error")
		log.Warn().Err(err).Str("session", sessionID).Msg("authorization code exchange failed")
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAuthExchange, describeExchangeError(err))
	}

	identity, err := g.identity(ctx, token)
	if err != nil {
		g.metrics.AuthExchange("error")
		log.Warn().Err(err).Msg("ID token verification failed")
		return nil, fmt.Errorf("%w: ID token verification failed", apperrors.ErrAuthExchange)
	}

	cred := &credential.Credential{
		Token: &oauth2.Token{
			AccessToken:  token.AccessToken,
			TokenType:    token.TokenType,
			RefreshToken: token.RefreshToken,
			Expiry:       token.Expiry,
		},
		Scopes:     g.grantedScopes(token),
		Identity:   identity,
		ObtainedAt: g.now(),
	}
	if err := g.creds.Save(ctx, cred); err != nil {
		g.metrics.AuthExchange("error")
		return nil, fmt.Errorf("persist credential: %w", err)
	}
	if sessionID != "" {
		_ = g.flows.Delete(sessionID)
	}

	g.metrics.AuthExchange("ok")
	log.Info().Str("email", identity.Email).Time("expiry", token.Expiry).Msg("credential stored")
	return cred, nil
}

// ExchangeCallback completes a redirect-based authorization. The state must belong to the session.
func (g *Gate) ExchangeCallback(ctx context.Context, sessionID, state, code string) (*credential.Credential, error) {
	flow, err := g.flows.GetByState(state)
	if err != nil || flow.SessionID != sessionID {
		g.metrics.AuthExchange("rejected")
		return nil, apperrors.Wrapf(apperrors.ErrAuthExchange, "invalid state parameter")
	}
	return g.Exchange(ctx, sessionID, code)
}

// Check is the entry re-check every view runs. An unreadable or invalid credential is removed.
func (g *Gate) Check(ctx context.Context) (*credential.Credential, error) {
	cred, err := g.creds.Load(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotAuthenticated
		}
		log.Err(err).Msg("stored credential is unreadable, discarding")
		g.discard(ctx)
		return nil, apperrors.Wrapf(apperrors.ErrSessionExpired, "invalid session")
	}
	if !cred.Valid() {
		g.discard(ctx)
		return nil, apperrors.ErrSessionExpired
	}
	return cred, nil
}

// SignOut revokes the stored tokens when possible and removes the credential and any pending flow.
func (g *Gate) SignOut(ctx context.Context, sessionID string) error {
	if cred, err := g.creds.Load(ctx); err == nil && cred.Token != nil {
		switch {
		case cred.Token.RefreshToken != "":
			g.revoke(ctx, cred.Token.RefreshToken, "refresh_token")
		case cred.Token.AccessToken != "":
			g.revoke(ctx, cred.Token.AccessToken, "access_token")
		}
	}
	if sessionID != "" {
		_ = g.flows.Delete(sessionID)
	}
	if err := g.creds.Delete(ctx); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// TokenSource returns a source for authorizing remote calls with the credential.
func (g *Gate) TokenSource(ctx context.Context, cred *credential.Credential) oauth2.TokenSource {
	return g.provider.TokenSource(ctx, cred.Token)
}

func (g *Gate) identity(ctx context.Context, token *oauth2.Token) (credential.Identity, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" || g.verifier == nil {
		return credential.Identity{}, nil
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return credential.Identity{}, err
	}
	var claims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return credential.Identity{}, fmt.Errorf("extract claims: %w", err)
	}
	return credential.Identity{Subject: claims.Sub, Email: claims.Email}, nil
}

func (g *Gate) grantedScopes(token *oauth2.Token) []string {
	if granted, ok := token.Extra("scope").(string); ok && granted != "" {
		return strings.Fields(granted)
	}
	return append([]string(nil), g.scopes...)
}

func (g *Gate) discard(ctx context.Context) {
	if err := g.creds.Delete(ctx); err != nil {
		log.Err(err).Msg("failed to delete credential")
	}
}

func (g *Gate) revoke(ctx context.Context, token, tokenTypeHint string) {
	if g.revokeURL == "" {
		return
	}
	form := url.Values{}
	form.Set("token", token)
	form.Set("token_type_hint", tokenTypeHint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		log.Err(err).Msg("failed to build revocation request")
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Err(err).Str("token_type", tokenTypeHint).Msg("failed to revoke token")
		return
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("token_type", tokenTypeHint).Msg("token revocation rejected")
	}
}

// describeExchangeError keeps the provider's error code and drops transport noise.
func describeExchangeError(err error) string {
	var re *oauth2.RetrieveError
	if apperrors.As(err, &re) {
		switch {
		case re.ErrorCode != "" && re.ErrorDescription != "":
			return re.ErrorCode + " - " + re.ErrorDescription
		case re.ErrorCode != "":
			return re.ErrorCode
		}
	}
	return err.Error()
}

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
