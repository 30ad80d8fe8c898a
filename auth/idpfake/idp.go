package idpfake

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const ClientID = "eduflow-test-client"

// Identity is what a registered authorization code resolves to.
type Identity struct {
	Subject string
	Email   string
}

// IdentityProvider is an httptest OAuth token endpoint that issues RS256 ID tokens.
type IdentityProvider struct {
	Server *httptest.Server

	key *rsa.PrivateKey

	lock      sync.Mutex
	codes     map[string]Identity
	issued    int
	verifiers []string
	revoked   []string
	ExpiresIn int
	OmitIDTok bool
}

func New() (*IdentityProvider, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	p := &IdentityProvider{
		key:       key,
		codes:     make(map[string]Identity),
		ExpiresIn: 3600,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", p.token)
	mux.HandleFunc("POST /revoke", p.revoke)
	p.Server = httptest.NewServer(mux)
	return p, nil
}

func (p *IdentityProvider) Close() {
	p.Server.Close()
}

// Issuer is the iss claim of minted ID tokens.
func (p *IdentityProvider) Issuer() string {
	return p.Server.URL
}

// RegisterCode makes code exchangeable exactly once.
func (p *IdentityProvider) RegisterCode(code string, identity Identity) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.codes[code] = identity
}

// Config returns an oauth2 client configuration pointing at the fake.
func (p *IdentityProvider) Config(scopes ...string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     ClientID,
		ClientSecret: "secret",
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   p.Server.URL + "/auth",
			TokenURL:  p.Server.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// Verifier checks ID tokens minted by this provider.
func (p *IdentityProvider) Verifier() *oidc.IDTokenVerifier {
	keySet := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&p.key.PublicKey}}
	return oidc.NewVerifier(p.Issuer(), keySet, &oidc.Config{ClientID: ClientID})
}

func (p *IdentityProvider) RevokeURL() string {
	return p.Server.URL + "/revoke"
}

// Revoked lists tokens posted to the revocation endpoint.
func (p *IdentityProvider) Revoked() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]string(nil), p.revoked...)
}

// Verifiers lists the PKCE code verifiers received by the token endpoint.
func (p *IdentityProvider) Verifiers() []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]string(nil), p.verifiers...)
}

// MintIDToken signs an ID token for identity.
func (p *IdentityProvider) MintIDToken(identity Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   p.Issuer(),
		"sub":   identity.Subject,
		"aud":   ClientID,
		"email": identity.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(p.key)
}

func (p *IdentityProvider) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, "invalid_request", "malformed form")
		return
	}
	if r.PostForm.Get("grant_type") != "authorization_code" {
		writeError(w, "unsupported_grant_type", "only authorization_code is supported")
		return
	}

	code := r.PostForm.Get("code")
	p.lock.Lock()
	identity, ok := p.codes[code]
	if ok {
		delete(p.codes, code)
		p.issued++
	}
	if v := r.PostForm.Get("code_verifier"); v != "" {
		p.verifiers = append(p.verifiers, v)
	}
	n := p.issued
	p.lock.Unlock()

	if !ok {
		writeError(w, "invalid_grant", "Malformed auth code.")
		return
	}

	resp := map[string]interface{}{
		"access_token":  fmt.Sprintf("access-%d", n),
		"refresh_token": fmt.Sprintf("refresh-%d", n),
		"token_type":    "Bearer",
		"expires_in":    p.ExpiresIn,
		"scope":         "openid https://www.googleapis.com/auth/classroom.courses",
	}
	if !p.OmitIDTok {
		idToken, err := p.MintIDToken(identity)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp["id_token"] = idToken
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (p *IdentityProvider) revoke(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	p.lock.Lock()
	p.revoked = append(p.revoked, r.PostForm.Get("token"))
	p.lock.Unlock()
	w.WriteHeader(http.StatusOK)
}

func writeError(w http.ResponseWriter, code, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             code,
		"error_description": description,
	})
}
