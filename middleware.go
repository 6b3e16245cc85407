package authgate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

type claimsContextKey struct{}

// Middleware is the session guard used by protected pages. It looks for an
// auth token in the server-side session first (when a SessionGetter is
// wired), then in the session cookie, and verifies whichever it finds.
// Handlers downstream read the verified claims from the request context.
type Middleware struct {
	// AuthTokenCookieName is the cookie holding the token. Defaults to
	// AuthCookieName.
	AuthTokenCookieName string

	// SigninURL is where unauthenticated requests are redirected. When
	// empty, EnsureUser responds 401 instead.
	SigninURL string

	// CallbackURLParam is the query parameter carrying the original path on
	// redirect. Defaults to "callbackURL".
	CallbackURLParam string

	// SessionGetter optionally reads a value from a server-side session
	// (e.g. scs). Consulted with SessionTokenKey before the cookie.
	SessionGetter func(r *http.Request, key string) string

	// VerifyToken validates a token string and returns its claims. Required.
	VerifyToken func(tokenString string) (*Claims, error)
}

// Defaults are read through accessors rather than written back to the
// struct, so a Middleware can be shared by concurrent requests without any
// mutation after setup.
func (m *Middleware) tokenCookieName() string {
	if m.AuthTokenCookieName != "" {
		return m.AuthTokenCookieName
	}
	return AuthCookieName
}

func (m *Middleware) callbackURLParam() string {
	if m.CallbackURLParam != "" {
		return m.CallbackURLParam
	}
	return "callbackURL"
}

// ClaimsFromContext returns the claims placed by ExtractUser/EnsureUser, or
// nil when the request is unauthenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return claims
}

// GetLoggedInUserId returns the authenticated user's id for the request, or
// "" when there is none.
func (m *Middleware) GetLoggedInUserId(r *http.Request) string {
	if claims := ClaimsFromContext(r.Context()); claims != nil {
		return claims.UserID()
	}
	if claims := m.authenticate(r); claims != nil {
		return claims.UserID()
	}
	return ""
}

// ExtractUser loads the claims into the request context when a valid token
// is present. It never redirects; use EnsureUser to enforce login.
func (m *Middleware) ExtractUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := m.authenticate(r); claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), claimsContextKey{}, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// EnsureUser admits the request only with a valid token. Any failure -
// missing cookie, bad signature, expiry, garbage - redirects to SigninURL
// (with the original path in CallbackURLParam) without surfacing why.
func (m *Middleware) EnsureUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := m.authenticate(r)
		if claims == nil {
			if m.SigninURL == "" {
				http.Error(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			encodedUrl := strings.Replace(url.QueryEscape(r.URL.Path), "+", "%20", -1)
			redirUrl := fmt.Sprintf("%s?%s=%s", m.SigninURL, m.callbackURLParam(), encodedUrl)
			http.Redirect(w, r, redirUrl, http.StatusFound)
			return
		}
		r = r.WithContext(context.WithValue(r.Context(), claimsContextKey{}, claims))
		next.ServeHTTP(w, r)
	})
}

// authenticate collects candidate tokens (session first, then cookie) and
// returns the claims of the first one that verifies.
func (m *Middleware) authenticate(r *http.Request) *Claims {
	if m.VerifyToken == nil {
		slog.Warn("no auth token verifier configured")
		return nil
	}

	var tokens []string
	if m.SessionGetter != nil {
		if t := m.SessionGetter(r, SessionTokenKey); t != "" {
			tokens = append(tokens, t)
		}
	}
	for _, cookie := range r.Cookies() {
		if cookie.Name == m.tokenCookieName() && cookie.Value != "" {
			tokens = append(tokens, cookie.Value)
		}
	}

	for _, token := range tokens {
		claims, err := m.VerifyToken(token)
		if err == nil && claims != nil {
			return claims
		}
		if err != nil {
			slog.Debug("rejected auth token", "err", err)
		}
	}
	return nil
}
