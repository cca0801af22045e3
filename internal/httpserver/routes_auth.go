package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/numberdle/internal/auth"
)

// mountAuth registers account routes and the signed-in-only history routes.
func (s *Server) mountAuth() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.Group(func(r chi.Router) {
		r.Use(s.authMW.Require)
		r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, auth.FromContext(r.Context()))
		})
		r.Get("/stats/me", s.handleMyStats)
		r.Get("/games/mine", s.handleMyGames)
	})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleSignup creates a user, signs them in and claims their guest results.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decode(w, r, &body) {
		return
	}
	u, err := s.users.Create(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		writeErr(w, http.StatusConflict, "username_taken", err.Error())
		return
	case err != nil:
		writeErr(w, http.StatusBadRequest, "invalid_signup", err.Error())
		return
	}
	if !s.signIn(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// handleLogin checks credentials, sets the session cookie and claims guest results.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decode(w, r, &body) {
		return
	}
	u, err := s.users.Authenticate(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
		return
	case err != nil:
		writeGameErr(w, r, err)
		return
	}
	if !s.signIn(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": u.ID, "username": u.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.cookies.ClearSession(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// signIn issues the session cookie and moves guest results to u.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, u *auth.User) bool {
	tok, exp, err := s.issuer.Sign(u.ID, u.Username)
	if err != nil {
		writeGameErr(w, r, err)
		return false
	}
	s.cookies.SetSession(w, tok, exp)
	if anon := s.cookies.AnonID(r); anon != "" {
		n, err := s.stats.Claim(r.Context(), anon, u.ID)
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("claim guest results")
		} else if n > 0 {
			hlog.FromRequest(r).Info().Int64("results", n).Str("user", u.ID).Msg("claimed guest results")
		}
	}
	return true
}

func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context())
	sum, err := s.stats.Summary(r.Context(), me.ID)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context())
	recs, err := s.stats.Recent(r.Context(), me.ID, 50)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
