package authgate

import (
	"net/http"
	"time"
)

// AuthCookieName is the default name of the session cookie carrying the
// signed auth token.
const AuthCookieName = "auth"

// SessionCookies binds auth tokens to an HTTP cookie. The zero value is
// usable: cookie named "auth", SameSite=Lax, Secure off (for local
// development - always set Secure in production).
type SessionCookies struct {
	// Name overrides the cookie name. Defaults to AuthCookieName.
	Name string

	// Secure marks the cookie as HTTPS-only
	Secure bool

	// SameSite policy for the cookie. Defaults to http.SameSiteLaxMode.
	SameSite http.SameSite
}

// Attach sets the session cookie on the outgoing response. The cookie is
// http-only, path "/", with Max-Age (in seconds) matching the token
// lifetime. Only the response is touched; request state is never modified.
func (c *SessionCookies) Attach(w http.ResponseWriter, token string, maxAgeSeconds int) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
		MaxAge:   maxAgeSeconds,
		Expires:  time.Now().Add(time.Second * time.Duration(maxAgeSeconds)),
	})
}

// Clear expires the session cookie immediately, forcing client-side removal
func (c *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

func (c *SessionCookies) cookieName() string {
	if c.Name != "" {
		return c.Name
	}
	return AuthCookieName
}

func (c *SessionCookies) sameSite() http.SameSite {
	if c.SameSite != 0 {
		return c.SameSite
	}
	return http.SameSiteLaxMode
}
