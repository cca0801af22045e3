package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// anonTTL is how long a guest keeps the same anonymous identity.
const anonTTL = 180 * 24 * time.Hour

// AnonPrefix marks guest ids so they can never collide with user ids.
const AnonPrefix = "anon-"

// Cookies writes the session and anonymous-guest cookies.
type Cookies struct {
	Name     string
	AnonName string
	// Secure switches to Secure + SameSite=None for cross-site production use.
	Secure bool
	// AnonKey signs guest ids. The cookie value is "<id>.<mac>".
	AnonKey []byte
}

func (c Cookies) base(name string) *http.Cookie {
	ck := &http.Cookie{Name: name, Path: "/", HttpOnly: true, Secure: c.Secure, SameSite: http.SameSiteLaxMode}
	if c.Secure {
		ck.SameSite = http.SameSiteNoneMode
	}
	return ck
}

// SetSession stores the token in the session cookie.
func (c Cookies) SetSession(w http.ResponseWriter, token string, exp time.Time) {
	ck := c.base(c.Name)
	ck.Value = token
	ck.Expires = exp
	http.SetCookie(w, ck)
}

// ClearSession deletes the session cookie.
func (c Cookies) ClearSession(w http.ResponseWriter) {
	ck := c.base(c.Name)
	ck.MaxAge = -1
	http.SetCookie(w, ck)
}

// EnsureAnon returns the guest id from the request, minting and setting a new
// one when the cookie is absent or fails verification.
func (c Cookies) EnsureAnon(w http.ResponseWriter, r *http.Request) string {
	if id := c.AnonID(r); id != "" {
		return id
	}
	id := AnonPrefix + uuid.NewString()
	ck := c.base(c.AnonName)
	ck.Value = c.signAnon(id)
	ck.Expires = time.Now().Add(anonTTL)
	http.SetCookie(w, ck)
	return id
}

// AnonID returns the verified guest id carried by the request, or "".
func (c Cookies) AnonID(r *http.Request) string {
	ck, err := r.Cookie(c.AnonName)
	if err != nil {
		return ""
	}
	id, mac, ok := strings.Cut(ck.Value, ".")
	if !ok || !strings.HasPrefix(id, AnonPrefix) {
		return ""
	}
	got, err := base64.RawURLEncoding.DecodeString(mac)
	if err != nil || !hmac.Equal(got, c.anonMAC(id)) {
		return ""
	}
	return id
}

func (c Cookies) anonMAC(id string) []byte {
	m := hmac.New(sha256.New, c.AnonKey)
	m.Write([]byte(id))
	return m.Sum(nil)
}

func (c Cookies) signAnon(id string) string {
	return id + "." + base64.RawURLEncoding.EncodeToString(c.anonMAC(id))
}

// Token extracts a bearer token from the Authorization header or the session cookie.
func (c Cookies) Token(r *http.Request) string {
	if a := r.Header.Get("Authorization"); len(a) > 7 && strings.EqualFold(a[:7], "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if ck, err := r.Cookie(c.Name); err == nil {
		return ck.Value
	}
	return ""
}
