package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/eduflow/internal/config"
	"github.com/stretchr/testify/require"
)

func TestFromMap_Defaults(t *testing.T) {
	c, err := config.FromMap(nil)
	require.NoError(t, err)

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "EduFlow", c.GetAppName())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, config.CredentialStoreFile, c.GetCredentialStore())
	require.Equal(t, config.OutOfBandRedirect, c.GetRedirectURL())
	require.Equal(t, filepath.Join("./data", "token.json"), c.GetCredentialPath())
	require.Equal(t, 12*time.Hour, c.GetMaxSessionAge())
	require.True(t, c.GetCSRFEnabled())
	require.Contains(t, c.GetScopes(), "openid")
}

func TestFromMap_Overrides(t *testing.T) {
	c, err := config.FromMap(map[string]string{
		"PORT":             ":9090",
		"FOLDER":           "/var/lib/eduflow",
		"CREDENTIAL_STORE": "BOLT",
		"SESSION_MAX_AGE":  "30m",
		"CSRF_ENABLED":     "false",
	})
	require.NoError(t, err)

	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, config.CredentialStoreBolt, c.GetCredentialStore())
	require.Equal(t, "/var/lib/eduflow/token.json", c.GetCredentialPath())
	require.Equal(t, 30*time.Minute, c.GetMaxSessionAge())
	require.False(t, c.GetCSRFEnabled())
}

func TestGetScopes_ReturnsCopy(t *testing.T) {
	c, err := config.FromMap(nil)
	require.NoError(t, err)

	s := c.GetScopes()
	s[0] = "mutated"
	require.Equal(t, "openid", c.GetScopes()[0])
}
