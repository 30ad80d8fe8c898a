package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	gsessions "github.com/gorilla/sessions"
	"github.com/jrsteele09/eduflow/auth"
	"github.com/jrsteele09/eduflow/classroom"
	"github.com/jrsteele09/eduflow/dashboard"
	"github.com/jrsteele09/eduflow/internal/config"
	"github.com/jrsteele09/eduflow/internal/metrics"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/rs/zerolog/log"
)

// Dependencies are the collaborators the server is wired with.
type Dependencies struct {
	Gate       *auth.Gate
	Sessions   sessions.Repo
	Classrooms classroom.Factory
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	handler    http.Handler
	routes     []string
	config     config.Config
	gate       *auth.Gate
	sessions   sessions.Repo
	classrooms classroom.Factory
	metrics    *metrics.Metrics
	cookies    *gsessions.CookieStore
	pages      *pageTemplates
	instructor *dashboard.Instructor
	student    *dashboard.Student
	validator  *dashboard.Validator
	now        func() time.Time
}

func New(cfg config.Config, deps Dependencies) (*Server, error) {
	if deps.Gate == nil || deps.Sessions == nil || deps.Classrooms == nil {
		return nil, fmt.Errorf("[Server New] gate, session repo and classroom factory are required")
	}

	keys, err := deriveKeys(cfg.GetSessionSecret())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to derive cookie keys: %w", err)
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	validator := dashboard.NewValidator()
	s := &Server{
		env:        cfg.GetEnv(),
		mux:        http.NewServeMux(),
		config:     cfg,
		gate:       deps.Gate,
		sessions:   deps.Sessions,
		classrooms: classroom.InstrumentFactory(deps.Classrooms, deps.Metrics),
		metrics:    deps.Metrics,
		cookies:    newCookieStore(keys, cfg),
		pages:      pages,
		instructor: dashboard.NewInstructor(validator),
		student:    dashboard.NewStudent(validator),
		validator:  validator,
		now:        deps.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.initRoutes()
	s.logRoutes()

	s.handler = s.mux
	if cfg.GetCSRFEnabled() {
		protect := csrf.Protect(keys.csrf,
			csrf.Path("/"),
			csrf.Secure(s.env != config.EnvDev),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.ErrorHandler(http.HandlerFunc(s.csrfFailureHandler)),
		)
		s.handler = plaintextMiddleware(protect(s.mux))
	}
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// SweepSessions drops idle sessions until ctx is done.
func (s *Server) SweepSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.sessions.DeleteExpired(s.now().Add(-s.config.GetMaxSessionAge()))
			if err != nil {
				log.Err(err).Msg("failed to sweep sessions")
				continue
			}
			if n > 0 {
				log.Debug().Int("count", n).Msg("expired sessions removed")
			}
		}
	}
}

func (s *Server) logRoutes() {
	if s.env != config.EnvDev {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
