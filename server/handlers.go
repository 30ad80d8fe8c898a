package server

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/jrsteele09/eduflow/dashboard"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

const appName = "EduFlow"

// layoutData is what layout.html renders around every page.
type layoutData struct {
	AppName   string
	Title     string
	Email     string
	Flash     sessions.Flash
	CSRFField template.HTML
	Page      interface{}
}

func (s *Server) layout(r *http.Request, title, email string, flash sessions.Flash, page interface{}) layoutData {
	return layoutData{
		AppName:   appName,
		Title:     title,
		Email:     email,
		Flash:     flash,
		CSRFField: csrf.TemplateField(r),
		Page:      page,
	}
}

// IndexHandler sends the browser to the one page its session may see.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs := sessionFrom(r)
		_, err := s.gate.Check(r.Context())
		redirectSeeOther(w, r, pagePath(dashboard.Route(err == nil, rs.State.Role)))
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
			log.Err(err).Msg("failed to write health response")
		}
	}
}
