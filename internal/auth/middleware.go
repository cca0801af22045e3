package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

// Identity is the signed-in player placed into the request context.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the signed-in player, or nil for guests.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxKey{}).(*Identity)
	return id
}

// Middleware resolves tokens into identities.
type Middleware struct {
	Issuer  *Issuer
	Users   *Users
	Cookies Cookies
}

// resolve verifies the request token and checks the user still exists.
func (m *Middleware) resolve(r *http.Request) (*Identity, bool) {
	tok := m.Cookies.Token(r)
	if tok == "" {
		return nil, false
	}
	c, err := m.Issuer.Parse(tok)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("rejecting token")
		return nil, false
	}
	if _, err := m.Users.FindByID(r.Context(), c.ID); err != nil {
		return nil, false
	}
	return &Identity{ID: c.ID, Username: c.Username}, true
}

// Optional decorates requests with an identity when a valid token is present.
// It never rejects; guests pass through.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := m.resolve(r); ok {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects requests without a valid token with 401.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.resolve(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized","message":"sign in required"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
