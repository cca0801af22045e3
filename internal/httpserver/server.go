// internal/httpserver/server.go
//
// HTTP server wiring for the Numberdle backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, CORS, timeouts, panic recovery).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): /game/new, /game/guess, /game/{id}, /game/{id}/giveup.
//   - Daily challenge endpoints (optional auth): mounted under /daily.
//   - Account and history endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Guests are identified by an anonymous cookie; signing in claims their results.
//   - Live games sit in the session store; finished games are written to the stats DB.

package httpserver

import (
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/numberdle/internal/auth"
	"github.com/robalobadob/numberdle/internal/config"
	"github.com/robalobadob/numberdle/internal/daily"
	"github.com/robalobadob/numberdle/internal/stats"
	"github.com/robalobadob/numberdle/internal/store"
)

// Server bundles the router with the game store and the SQLite-backed stores.
type Server struct {
	r       *chi.Mux
	cfg     *config.Config
	games   store.Store
	stats   *stats.Store
	daily   *daily.Store
	users   *auth.Users
	issuer  *auth.Issuer
	authMW  *auth.Middleware
	cookies auth.Cookies
	now     func() time.Time

	dailyMu       sync.Mutex
	dailySessions map[string]dailySession // owner|date
}

type dailySession struct {
	gameID string
	date   string
}

// New constructs a Server, installs middleware, and registers routes.
func New(games store.Store, db *sql.DB, cfg *config.Config, logger zerolog.Logger) *Server {
	cookies := auth.Cookies{
		Name:     cfg.Auth.CookieName,
		AnonName: cfg.Auth.AnonCookie,
		Secure:   cfg.Auth.Production,
		AnonKey:  []byte("anon:" + cfg.Auth.JWTSecret),
	}
	users := auth.NewUsers(db)
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.ExpiresDays)*24*time.Hour)
	s := &Server{
		r:             chi.NewRouter(),
		cfg:           cfg,
		games:         games,
		stats:         stats.NewStore(db),
		daily:         daily.NewStore(db),
		users:         users,
		issuer:        issuer,
		authMW:        &auth.Middleware{Issuer: issuer, Users: users, Cookies: cookies},
		cookies:       cookies,
		now:           time.Now,
		dailySessions: make(map[string]dailySession),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.Server.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "numberdle",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/guess", "/daily/*", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Group(func(r chi.Router) {
		r.Use(s.authMW.Optional)
		s.mountGame(r)
		s.mountDaily(r)
	})
	s.mountAuth()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, apiError{Error: "not_found", Message: r.URL.Path})
	})
	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// HTTPServer returns an *http.Server serving the router on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// owner is the id games and results are filed under: the signed-in user,
// else the guest cookie (minted on first use).
func (s *Server) owner(w http.ResponseWriter, r *http.Request) string {
	if id := auth.FromContext(r.Context()); id != nil {
		return id.ID
	}
	return s.cookies.EnsureAnon(w, r)
}

// owns reports whether the request may act on a game filed under owner.
// A player who signed in mid-game still owns the games started as a guest.
func (s *Server) owns(r *http.Request, owner string) bool {
	if id := auth.FromContext(r.Context()); id != nil && id.ID == owner {
		return true
	}
	anon := s.cookies.AnonID(r)
	return anon != "" && anon == owner
}
