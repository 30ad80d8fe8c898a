package server

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

func TemplateFilesFS() fs.FS {
	// Create the sub filesystem once
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

func templateFuncs() template.FuncMap {
	title := cases.Title(language.English)
	return template.FuncMap{
		// markdown renders user text; raw HTML in the source is omitted by goldmark
		"markdown": func(src string) template.HTML {
			var buf bytes.Buffer
			if err := markdownRenderer.Convert([]byte(src), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(src))
			}
			return template.HTML(buf.String())
		},
		"title": func(s string) string { return title.String(s) },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "N/A"
			}
			return t.Format("January 02, 2006")
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return "N/A"
			}
			return t.Format("January 02, 2006 at 15:04")
		},
		"orNA": func(s string) string {
			if s == "" {
				return "N/A"
			}
			return s
		},
	}
}

// ParseTemplate parses a page together with the shared layout from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(name).Funcs(templateFuncs()).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

type pageTemplates struct {
	login      *template.Template
	instructor *template.Template
	student    *template.Template
}

func parsePages() (*pageTemplates, error) {
	var (
		p   pageTemplates
		err error
	)
	if p.login, err = ParseTemplate("login.html"); err != nil {
		return nil, err
	}
	if p.instructor, err = ParseTemplate("instructor.html"); err != nil {
		return nil, err
	}
	if p.student, err = ParseTemplate("student.html"); err != nil {
		return nil, err
	}
	return &p, nil
}

// render executes the layout of tmpl into a buffer first so a failed render never sends half a page.
func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, page string, data interface{}) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		log.Err(err).Str("page", page).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	s.metrics.Render(page)
	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = buf.WriteTo(w)
}
