package server

import (
	"fmt"
	"net/http"
)

// OAuthCallbackHandler completes a redirect-based authorization when a loopback redirect URI is configured.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs := sessionFrom(r)
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")

		s.finishExchange(w, r, rs, func() error {
			if errorParam != "" {
				return fmt.Errorf("%s - %s", errorParam, errorDesc)
			}
			if code == "" || state == "" {
				return fmt.Errorf("missing code or state parameter")
			}
			_, err := s.gate.ExchangeCallback(r.Context(), rs.ID, state, code)
			return err
		})
	}
}
