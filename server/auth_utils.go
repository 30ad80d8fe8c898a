package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	gsessions "github.com/gorilla/sessions"
	"github.com/jrsteele09/eduflow/credential"
	"github.com/jrsteele09/eduflow/dashboard"
	"github.com/jrsteele09/eduflow/internal/config"
	apperrors "github.com/jrsteele09/eduflow/internal/errors"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/hkdf"
)

const (
	// sessionCookieName is the name of the signed cookie carrying the session ID
	sessionCookieName = "eduflow_session"
	sessionIDValue    = "sid"
)

type ctxKey int

const (
	sessionCtxKey ctxKey = iota
	credentialCtxKey
)

// requestSession is the session loaded for one request
type requestSession struct {
	ID    string
	State sessions.State
}

type cookieKeys struct {
	hash  []byte
	block []byte
	csrf  []byte
}

// deriveKeys expands the configured secret into independent cookie and CSRF keys.
// Without a secret the keys are random and sessions do not survive a restart.
func deriveKeys(secret string) (cookieKeys, error) {
	ikm := []byte(secret)
	if secret == "" {
		log.Warn().Msg("SESSION_SECRET is not set, using an ephemeral key")
		ikm = make([]byte, 32)
		if _, err := rand.Read(ikm); err != nil {
			return cookieKeys{}, err
		}
	}

	expand := func(info string, n int) ([]byte, error) {
		key := make([]byte, n)
		if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, nil, []byte(info)), key); err != nil {
			return nil, fmt.Errorf("expand %s: %w", info, err)
		}
		return key, nil
	}

	var keys cookieKeys
	var err error
	if keys.hash, err = expand("eduflow session hash", 64); err != nil {
		return cookieKeys{}, err
	}
	if keys.block, err = expand("eduflow session block", 32); err != nil {
		return cookieKeys{}, err
	}
	if keys.csrf, err = expand("eduflow csrf", 32); err != nil {
		return cookieKeys{}, err
	}
	return keys, nil
}

func newCookieStore(keys cookieKeys, cfg config.Config) *gsessions.CookieStore {
	store := gsessions.NewCookieStore(keys.hash, keys.block)
	store.Options = &gsessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.GetMaxSessionAge().Seconds()),
		HttpOnly: true,
		Secure:   cfg.GetEnv() != config.EnvDev,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SessionMiddleware loads (or starts) the browser session for the request.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := s.cookies.Get(r, sessionCookieName)
		if err != nil {
			log.Debug().Err(err).Msg("discarding unreadable session cookie")
		}

		sessionID, _ := cookie.Values[sessionIDValue].(string)
		if sessionID == "" {
			sessionID = uuid.NewString()
			cookie.Values[sessionIDValue] = sessionID
			if err := cookie.Save(r, w); err != nil {
				log.Err(err).Msg("failed to save session cookie")
				http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
				return
			}
		}

		state, err := s.sessions.Get(sessionID)
		if err != nil && !errors.Is(err, apperrors.ErrSessionNotFound) {
			log.Err(err).Str("session", sessionID).Msg("failed to load session")
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey, &requestSession{ID: sessionID, State: state})
		next(w, r.WithContext(ctx))
	}
}

// RequireCredential re-checks the stored credential on entry to a dashboard and sends the
// request to the one page its session may see.
func (s *Server) RequireCredential(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs := sessionFrom(r)

		cred, err := s.gate.Check(r.Context())
		if err != nil {
			msg := "Please login first"
			if errors.Is(err, apperrors.ErrSessionExpired) {
				msg = "Session expired, please login again"
			}
			s.saveState(rs.ID, sessions.State{}.WithFlash(sessions.FlashError, msg))
			redirectSeeOther(w, r, RouteLogin)
			return
		}

		if want := dashboard.Route(true, rs.State.Role); pagePath(want) != r.URL.Path {
			redirectSeeOther(w, r, pagePath(want))
			return
		}

		ctx := context.WithValue(r.Context(), credentialCtxKey, cred)
		next(w, r.WithContext(ctx))
	}
}

func sessionFrom(r *http.Request) *requestSession {
	if rs, ok := r.Context().Value(sessionCtxKey).(*requestSession); ok {
		return rs
	}
	return &requestSession{}
}

func credentialFrom(r *http.Request) *credential.Credential {
	cred, _ := r.Context().Value(credentialCtxKey).(*credential.Credential)
	return cred
}

func (s *Server) saveState(sessionID string, state sessions.State) {
	if sessionID == "" {
		return
	}
	if err := s.sessions.Upsert(sessionID, state); err != nil {
		log.Err(err).Str("session", sessionID).Msg("failed to save session")
	}
}

// endSession forgets the session server-side and expires its cookie.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if sessionID != "" {
		if err := s.sessions.Delete(sessionID); err != nil {
			log.Err(err).Msg("failed to delete session")
		}
	}
	cookie, _ := s.cookies.Get(r, sessionCookieName)
	cookie.Options.MaxAge = -1
	if err := cookie.Save(r, w); err != nil {
		log.Err(err).Msg("failed to expire session cookie")
	}
}

func pagePath(p dashboard.Page) string {
	switch p {
	case dashboard.PageInstructor:
		return RouteInstructor
	case dashboard.PageStudent:
		return RouteStudent
	default:
		return RouteLogin
	}
}

func redirectSeeOther(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
