package credential

import (
	"time"

	"golang.org/x/oauth2"
)

// Identity is who the credential was issued to, taken from the verified ID token.
type Identity struct {
	Subject string `json:"sub,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Credential is the token bundle proving identity to the remote API.
type Credential struct {
	Token      *oauth2.Token `json:"token"`
	Scopes     []string      `json:"scopes,omitempty"`
	Identity   Identity      `json:"identity,omitempty"`
	ObtainedAt time.Time     `json:"obtained_at"`
}

// Valid reports whether the token is present and not expired.
func (c *Credential) Valid() bool {
	return c != nil && c.Token.Valid()
}
