package config

import "path/filepath"

// OutOfBandRedirect is the redirect marker for the copy/paste authorization flow.
const OutOfBandRedirect = "urn:ietf:wg:oauth:2.0:oob"

type OAuthConfig interface {
	GetClientSecretsFile() string
	GetRedirectURL() string
	GetRevokeURL() string
	GetOIDCIssuer() string
	GetScopes() []string
	GetCredentialPath() string
}

type OAuth struct {
	ClientSecretsFile string `env:"CLIENT_SECRETS_FILE" envDefault:"credentials.json"`
	RedirectURL       string `env:"OAUTH_REDIRECT_URL" envDefault:"urn:ietf:wg:oauth:2.0:oob"`
	RevokeURL         string `env:"OAUTH_REVOKE_URL" envDefault:"https://oauth2.googleapis.com/revoke"`
	OIDCIssuer        string `env:"OIDC_ISSUER" envDefault:"https://accounts.google.com"`
	DataFolder        string `env:"FOLDER" envDefault:"./data"`
}

var _ OAuthConfig = OAuth{}

var scopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/classroom.courses",
	"https://www.googleapis.com/auth/classroom.coursework.me",
	"https://www.googleapis.com/auth/classroom.coursework.students",
	"https://www.googleapis.com/auth/classroom.announcements",
	"https://www.googleapis.com/auth/classroom.rosters",
	"https://www.googleapis.com/auth/classroom.profile.emails",
	"https://www.googleapis.com/auth/classroom.courseworkmaterials",
	"https://www.googleapis.com/auth/drive.readonly",
}

func (o OAuth) GetClientSecretsFile() string {
	return o.ClientSecretsFile
}

func (o OAuth) GetRedirectURL() string {
	if o.RedirectURL == "" {
		return OutOfBandRedirect
	}
	return o.RedirectURL
}

// GetRevokeURL returns the token revocation endpoint. Empty disables revocation on sign-out.
func (o OAuth) GetRevokeURL() string {
	return o.RevokeURL
}

// GetOIDCIssuer returns the issuer used to verify ID tokens. Empty disables verification.
func (o OAuth) GetOIDCIssuer() string {
	return o.OIDCIssuer
}

// GetScopes returns the fixed scope list requested at authorization time.
func (OAuth) GetScopes() []string {
	return append([]string(nil), scopes...)
}

// GetCredentialPath returns the well-known location of the persisted credential.
func (o OAuth) GetCredentialPath() string {
	return filepath.Join(o.DataFolder, "token.json")
}
