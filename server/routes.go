package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthCode, ChainMiddleware(s.AuthCodeHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthRole, ChainMiddleware(s.ChooseRoleHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))

	// Dashboards (credential re-checked on entry)
	s.RegisterRouteHandler("GET "+RouteInstructor, ChainMiddleware(s.InstructorPageHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireCredential)...))
	s.RegisterRouteHandler("POST "+RouteInstructor, ChainMiddleware(s.InstructorActionHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireCredential)...))
	s.RegisterRouteHandler("GET "+RouteStudent, ChainMiddleware(s.StudentPageHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireCredential)...))
	s.RegisterRouteHandler("POST "+RouteStudent, ChainMiddleware(s.StudentActionHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireCredential)...))

	// Operational
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := "css/" + r.PathValue("file")
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r.Method, filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	errorString := Red + error + ResetColor
	log.Error().Msgf("[%-19s] %s %s", displayMethod, path, errorString)
}
