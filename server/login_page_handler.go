package server

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/eduflow/dashboard"
	apperrors "github.com/jrsteele09/eduflow/internal/errors"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/rs/zerolog/log"
)

// Steps of the login page.
const (
	loginStepCode    = "code"
	loginStepRole    = "role"
	loginStepWelcome = "welcome"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Step          string
	AuthURL       string
	Suggestion    string
	Role          string
	DashboardPath string
}

// LoginPageHandler shows whichever step of signing in the session is at (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rs := sessionFrom(r)
		flash, state := rs.State.TakeFlash()

		var (
			data  LoginPageData
			email string
		)
		cred, err := s.gate.Check(ctx)
		switch {
		case err != nil:
			if errors.Is(err, apperrors.ErrSessionExpired) && flash.Empty() {
				flash = sessions.Flash{Kind: sessions.FlashError, Message: "Session expired, please login again"}
			}
			// A role never outlives the credential it was chosen under.
			state = sessions.State{CreatedAt: state.CreatedAt}

			authURL, err := s.gate.Begin(rs.ID)
			if err != nil {
				log.Err(err).Msg("failed to begin authorization")
				http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
				return
			}
			data.Step = loginStepCode
			data.AuthURL = authURL

		case !state.Role.IsSet():
			email = cred.Identity.Email
			if !state.Flags.RoleSuggestion.IsSet() {
				svc, err := s.classrooms(ctx, s.gate.TokenSource(ctx, cred))
				if err != nil {
					log.Warn().Err(err).Msg("classroom client unavailable for role suggestion")
				} else {
					state = state.WithSuggestion(dashboard.SuggestRole(ctx, svc))
				}
			}
			data.Step = loginStepRole
			data.Suggestion = string(state.Flags.RoleSuggestion)

		default:
			email = cred.Identity.Email
			data.Step = loginStepWelcome
			data.Role = string(state.Role)
			data.DashboardPath = pagePath(dashboard.Route(true, state.Role))
		}

		s.saveState(rs.ID, state)
		s.render(w, s.pages.login, "login", s.layout(r, "Sign in", email, flash, data))
	}
}

// AuthCodeHandler exchanges a pasted authorization code (POST /auth/code)
func (s *Server) AuthCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs := sessionFrom(r)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		s.finishExchange(w, r, rs, func() error {
			_, err := s.gate.Exchange(r.Context(), rs.ID, r.PostFormValue("code"))
			return err
		})
	}
}

// finishExchange records the outcome of a code exchange and returns to the login page.
// A new credential always starts without a role.
func (s *Server) finishExchange(w http.ResponseWriter, r *http.Request, rs *requestSession, exchange func() error) {
	state := rs.State
	if err := exchange(); err != nil {
		state = state.WithFlash(sessions.FlashError, "Authentication failed: "+err.Error())
	} else {
		state = sessions.State{CreatedAt: state.CreatedAt}.WithFlash(sessions.FlashSuccess, "Authentication successful!")
	}
	s.saveState(rs.ID, state)
	redirectSeeOther(w, r, RouteLogin)
}

// ChooseRoleHandler applies the explicit role choice (POST /auth/role)
func (s *Server) ChooseRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs := sessionFrom(r)
		cred, err := s.gate.Check(r.Context())
		if err != nil {
			redirectSeeOther(w, r, RouteLogin)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		c := dashboard.NewContext(rs.ID, cred, rs.State, s.now())
		next, outcome := dashboard.ChooseRole(c, r.PostFormValue("role"))
		next = next.WithOutcome(outcome)
		s.saveState(next.SessionID, next.Session)
		redirectSeeOther(w, r, RouteLogin)
	}
}

// LogoutHandler revokes and forgets the credential and the browser session (POST /auth/logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs := sessionFrom(r)
		if err := s.gate.SignOut(r.Context(), rs.ID); err != nil {
			log.Err(err).Msg("Logout: failed to remove credential")
		}
		s.endSession(w, r, rs.ID)
		redirectSeeOther(w, r, RouteLogin)
	}
}
