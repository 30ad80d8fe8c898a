package credential_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/eduflow/credential"
	apperrors "github.com/jrsteele09/eduflow/internal/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newCredential(access string, scopes ...string) *credential.Credential {
	return &credential.Credential{
		Token: &oauth2.Token{
			AccessToken:  access,
			TokenType:    "Bearer",
			RefreshToken: "refresh-" + access,
			Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		},
		Scopes:     scopes,
		Identity:   credential.Identity{Subject: "sub-1", Email: "teacher@example.com"},
		ObtainedAt: time.Now().UTC().Truncate(time.Second),
	}
}

type repoFactory func(t *testing.T) credential.Repo

func repoFactories() map[string]repoFactory {
	return map[string]repoFactory{
		"file": func(t *testing.T) credential.Repo {
			r, err := credential.NewFileRepo(filepath.Join(t.TempDir(), "nested", "token.json"))
			require.NoError(t, err)
			return r
		},
		"bolt": func(t *testing.T) credential.Repo {
			r, err := credential.OpenBoltRepo(filepath.Join(t.TempDir(), "token.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = r.Close() })
			return r
		},
	}
}

func TestRepo_Behaviour(t *testing.T) {
	ctx := context.Background()

	for name, factory := range repoFactories() {
		t.Run(name, func(t *testing.T) {
			t.Run("load missing record", func(t *testing.T) {
				r := factory(t)
				_, err := r.Load(ctx)
				require.ErrorIs(t, err, apperrors.ErrNotFound)
			})

			t.Run("save replaces the previous record", func(t *testing.T) {
				r := factory(t)
				require.NoError(t, r.Save(ctx, newCredential("first", "openid", "email")))
				require.NoError(t, r.Save(ctx, newCredential("second", "openid")))

				got, err := r.Load(ctx)
				require.NoError(t, err)
				require.Equal(t, "second", got.Token.AccessToken)
				require.Equal(t, "refresh-second", got.Token.RefreshToken)
				require.Equal(t, []string{"openid"}, got.Scopes)
				require.True(t, got.Valid())
			})

			t.Run("delete is idempotent", func(t *testing.T) {
				r := factory(t)
				require.NoError(t, r.Save(ctx, newCredential("token")))
				require.NoError(t, r.Delete(ctx))
				require.NoError(t, r.Delete(ctx))

				_, err := r.Load(ctx)
				require.ErrorIs(t, err, apperrors.ErrNotFound)
			})

			t.Run("cancelled context", func(t *testing.T) {
				r := factory(t)
				cctx, cancel := context.WithCancel(ctx)
				cancel()
				require.Error(t, r.Save(cctx, newCredential("token")))
			})
		})
	}
}

func TestFileRepo_PermissionsAndCorruption(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token.json")
	r, err := credential.NewFileRepo(path)
	require.NoError(t, err)

	require.NoError(t, r.Save(ctx, newCredential("token")))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = r.Load(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNewFileRepo_RequiresPath(t *testing.T) {
	_, err := credential.NewFileRepo("  ")
	require.Error(t, err)
}

func TestCredential_Valid(t *testing.T) {
	var nilCred *credential.Credential
	require.False(t, nilCred.Valid())
	require.False(t, (&credential.Credential{}).Valid())

	expired := newCredential("token")
	expired.Token.Expiry = time.Now().Add(-time.Minute)
	require.False(t, expired.Valid())

	require.True(t, newCredential("token").Valid())
}
