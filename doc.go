// Package authgate provides cookie-based credential authentication for Go
// web applications: signup, signin, logout, and a session guard for
// protected pages.
//
// AuthGate keeps the moving parts small. A user record is a single row
// (id, email, password hash, created-at). Logins are stateless: a signed,
// time-limited JWT carrying the user's id and email travels in an http-only
// cookie named "auth". There are no refresh tokens and no revocation list;
// an expired token simply means signing in again.
//
// # Basic Usage
//
// Wire a store, a token issuer, and the handlers:
//
//	import (
//	    "github.com/panyam/authgate"
//	    authstores "github.com/panyam/authgate/stores/gorm"
//	)
//
//	userStore := authstores.NewUserStore(db)
//	auth := &authgate.Auth{
//	    Store:  userStore,
//	    Tokens: &authgate.TokenIssuer{SecretKey: []byte(secret), Issuer: "myapp"},
//	}
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("POST /auth/signup", auth.HandleSignup)
//	mux.HandleFunc("POST /auth/signin", auth.HandleSignin)
//	mux.HandleFunc("POST /auth/logout", auth.HandleLogout)
//
// Guard protected pages with the middleware:
//
//	guard := &authgate.Middleware{
//	    SigninURL:   "/signin",
//	    VerifyToken: auth.Tokens.Verify,
//	}
//	mux.Handle("GET /dashboard", guard.EnsureUser(dashboardHandler))
//
// Handlers downstream of the guard read the verified claims from the
// request context via authgate.ClaimsFromContext.
//
// # Store Implementations
//
// AuthGate ships a GORM-backed UserStore in stores/gorm for Postgres (or any
// GORM dialect), and an in-memory MemoryUserStore suitable for development
// and tests. Email uniqueness is enforced by the store: concurrent signups
// for the same email resolve to exactly one success, backed by the
// database's unique index rather than a check in the handler.
//
// # Security
//
// Passwords are hashed with bcrypt at the default cost; unknown-email and
// wrong-password failures return identical responses so callers cannot
// enumerate accounts. Tokens are HS256-signed with a server-held secret and
// rejected on bad signature, expiry, or malformed input. Cookies are
// http-only, path "/", SameSite=Lax, and marked Secure in production.
//
// # Testing
//
// Handlers can be exercised without a running server using
// httptest.NewRequest and httptest.ResponseRecorder against a
// MemoryUserStore.
package authgate
