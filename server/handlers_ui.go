package server

import (
	"net/http"
	"net/url"

	"github.com/jrsteele09/eduflow/classroom"
	"github.com/jrsteele09/eduflow/dashboard"
	"github.com/rs/zerolog/log"
)

// dashboardContext builds the render context of a request that passed RequireCredential.
func (s *Server) dashboardContext(r *http.Request) dashboard.Context {
	rs := sessionFrom(r)
	return dashboard.NewContext(rs.ID, credentialFrom(r), rs.State, s.now())
}

func (s *Server) classroomFor(r *http.Request) (classroom.Service, error) {
	ctx := r.Context()
	return s.classrooms(ctx, s.gate.TokenSource(ctx, credentialFrom(r)))
}

// InstructorPageHandler renders the instructor dashboard (GET /instructor)
func (s *Server) InstructorPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.dashboardContext(r)
		svc, err := s.classroomFor(r)
		if err != nil {
			log.Err(err).Msg("failed to create classroom client")
			http.Error(w, "502 - Classroom unavailable", http.StatusBadGateway)
			return
		}

		page := s.instructor.Page(r.Context(), c, svc, dashboard.Tab(r.URL.Query().Get("tab")))
		_, state := c.Session.TakeFlash()
		s.saveState(c.SessionID, state)
		s.render(w, s.pages.instructor, "instructor", s.layout(r, "Instructor Dashboard", page.Email, page.Flash, page))
	}
}

// InstructorActionHandler executes one instructor intent and redirects back (POST /instructor)
func (s *Server) InstructorActionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.dashboardContext(r)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		next := c
		intent, err := dashboard.DecodeIntent(r.PostForm)
		if err != nil {
			next = c.WithOutcome(dashboard.DescribeError(s.validator, "handling request", err))
		} else {
			svc, err := s.classroomFor(r)
			if err != nil {
				next = c.WithOutcome(dashboard.DescribeError(s.validator, "connecting to Classroom", err))
			} else {
				next, _ = s.instructor.Handle(r.Context(), c, svc, intent)
			}
		}

		s.saveState(next.SessionID, next.Session)
		redirectSeeOther(w, r, withTab(RouteInstructor, r.PostFormValue("tab")))
	}
}

// StudentPageHandler renders the read-only student dashboard (GET /student)
func (s *Server) StudentPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.dashboardContext(r)
		svc, err := s.classroomFor(r)
		if err != nil {
			log.Err(err).Msg("failed to create classroom client")
			http.Error(w, "502 - Classroom unavailable", http.StatusBadGateway)
			return
		}

		page := s.student.Page(r.Context(), c, svc, dashboard.Tab(r.URL.Query().Get("tab")))
		_, state := c.Session.TakeFlash()
		s.saveState(c.SessionID, state)
		s.render(w, s.pages.student, "student", s.layout(r, "Student Dashboard", page.Email, page.Flash, page))
	}
}

// StudentActionHandler applies a navigation intent (POST /student)
func (s *Server) StudentActionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.dashboardContext(r)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		next := c
		intent, err := dashboard.DecodeIntent(r.PostForm)
		if err != nil {
			next = c.WithOutcome(dashboard.DescribeError(s.validator, "handling request", err))
		} else {
			next, _ = s.student.Handle(r.Context(), c, intent)
		}

		s.saveState(next.SessionID, next.Session)
		redirectSeeOther(w, r, withTab(RouteStudent, r.PostFormValue("tab")))
	}
}

func withTab(path, tab string) string {
	if tab == "" {
		return path
	}
	return path + "?" + url.Values{"tab": {tab}}.Encode()
}
