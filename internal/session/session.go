// internal/session/session.go
//
// Anonymous client identity.
//
// Context
//   Each browser keeps its own settings, just as it would in local storage.
//   The server tells browsers apart by a random, opaque id carried in the
//   “aoc_client” cookie.  No login, no personal data: the id is a uuid v4
//   minted on first contact and refreshed on every request so an active
//   browser never loses its settings.
//
//   Middleware puts the id on the request context; handlers read it with
//   ClientID and use it as the settings store scope.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// CookieName carries the client id.
	CookieName = "aoc_client"
	cookieTTL  = 365 * 24 * time.Hour
)

type ctxKey struct{}

// Middleware ensures every request carries a client id, issuing a fresh
// cookie when the browser sent none or sent garbage.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := fromCookie(r)
		if !ok {
			id = uuid.NewString()
		}
		setCookie(w, r, id)
		next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), id)))
	})
}

// WithClientID returns ctx carrying id.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ClientID returns the id placed by Middleware.  ok == false outside it.
func ClientID(ctx context.Context) (id string, ok bool) {
	id, ok = ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// Forget clears the client cookie.  The next request mints a new id.
func Forget(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// fromCookie accepts only well-formed uuids so a hand-edited cookie cannot
// address another store key.
func fromCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	u, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func setCookie(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil, // only send over HTTPS
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieTTL),
	})
}
