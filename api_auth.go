package authgate

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
)

// Session keys written on login when a session manager is configured. The
// guard's SessionGetter can read the token back with SessionTokenKey.
const (
	SessionUserKey  = "loggedInUserId"
	SessionTokenKey = "authToken"
)

// DefaultTokenLifetime is used for both signin and signup when no per-flow
// lifetime is configured.
const DefaultTokenLifetime = 24 * time.Hour

const minPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Auth orchestrates the credential flows: signup, signin, and logout. All
// fields are set once at startup and treated as read-only afterwards, so an
// Auth is safe for concurrent requests.
type Auth struct {
	// Store persists user records. Required.
	Store UserStore

	// Tokens issues and verifies auth tokens. Required.
	Tokens *TokenIssuer

	// Cookies writes the session cookie. Defaults to a Lax "auth" cookie.
	Cookies *SessionCookies

	// Per-flow token lifetimes. Both default to DefaultTokenLifetime.
	// The cookie Max-Age always matches the issued token's lifetime.
	SigninTokenLifetime time.Duration
	SignupTokenLifetime time.Duration

	// Session optionally mirrors the login into a server-side session, the
	// way the guard's SessionGetter expects. May be nil.
	Session *scs.SessionManager

	// PostLoginURL is where form-based signin/signup submissions are
	// redirected on success. Defaults to "/dashboard".
	PostLoginURL string

	// PostLogoutURL is where form-based logout submissions are redirected.
	// Defaults to "/signin".
	PostLogoutURL string

	// Logger receives internal failures that are collapsed to a generic
	// 500 for the caller. Defaults to slog.Default().
	Logger *slog.Logger
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup processes user registration: validate, check for an existing
// email, hash, create, then log the new user in.
func (a *Auth) HandleSignup(w http.ResponseWriter, r *http.Request) {
	creds, authErr := parseCredentials(r)
	if authErr != nil {
		writeAuthError(w, authErr, http.StatusBadRequest)
		return
	}
	if authErr := validateSignup(creds); authErr != nil {
		writeAuthError(w, authErr, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	_, err := a.Store.GetUserByEmail(ctx, creds.Email)
	if err == nil {
		writeAuthError(w, NewAuthError(ErrCodeEmailExists, "User already exists", "email"), http.StatusConflict)
		return
	}
	if !errors.Is(err, ErrUserNotFound) {
		a.internalError(w, "signup: user lookup failed", err)
		return
	}

	hash, err := HashPassword(creds.Password)
	if err != nil {
		a.internalError(w, "signup: password hashing failed", err)
		return
	}

	user, err := a.Store.CreateUser(ctx, creds.Email, hash)
	if err != nil {
		// Lost a race with a concurrent signup for the same email; the
		// store's unique index is the arbiter.
		if errors.Is(err, ErrUserExists) {
			writeAuthError(w, NewAuthError(ErrCodeEmailExists, "User already exists", "email"), http.StatusConflict)
			return
		}
		a.internalError(w, "signup: user creation failed", err)
		return
	}

	if err := a.logIn(w, r, user, a.signupLifetime()); err != nil {
		a.internalError(w, "signup: token issuance failed", err)
		return
	}

	a.logger().Info("user signed up", "userId", user.ID)
	if isFormRequest(r) {
		http.Redirect(w, r, a.postLoginURL(), http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"userId": user.ID,
		"email":  user.Email,
	})
}

// HandleSignin processes login. Unknown email and wrong password take the
// same path out so the responses are indistinguishable.
func (a *Auth) HandleSignin(w http.ResponseWriter, r *http.Request) {
	creds, authErr := parseCredentials(r)
	if authErr != nil {
		writeAuthError(w, authErr, http.StatusBadRequest)
		return
	}
	if authErr := validateSignin(creds); authErr != nil {
		writeAuthError(w, authErr, http.StatusBadRequest)
		return
	}

	user, err := a.Store.GetUserByEmail(r.Context(), creds.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			a.invalidCredentials(w)
			return
		}
		a.internalError(w, "signin: user lookup failed", err)
		return
	}

	if !CheckPassword(creds.Password, user.PasswordHash) {
		a.invalidCredentials(w)
		return
	}

	if err := a.logIn(w, r, user, a.signinLifetime()); err != nil {
		a.internalError(w, "signin: token issuance failed", err)
		return
	}

	a.logger().Info("user signed in", "userId", user.ID)
	if isFormRequest(r) {
		http.Redirect(w, r, a.postLoginURL(), http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"userId": user.ID,
		"email":  user.Email,
	})
}

// HandleLogout clears the session cookie (and the server-side session if one
// is configured). Always succeeds.
func (a *Auth) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if a.Session != nil {
		if err := a.Session.Destroy(r.Context()); err != nil {
			a.logger().Warn("error destroying session", "err", err)
		}
	}
	a.cookies().Clear(w)

	if isFormRequest(r) {
		http.Redirect(w, r, a.postLogoutURL(), http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Logged out"})
}

// logIn issues a token for the user and binds it to the response: session
// cookie always, server-side session when configured.
func (a *Auth) logIn(w http.ResponseWriter, r *http.Request, user *User, lifetime time.Duration) error {
	token, err := a.Tokens.Issue(user.ID, user.Email, lifetime)
	if err != nil {
		return err
	}
	if a.Session != nil {
		a.Session.Put(r.Context(), SessionUserKey, user.ID)
		a.Session.Put(r.Context(), SessionTokenKey, token)
	}
	a.cookies().Attach(w, token, int(lifetime.Seconds()))
	return nil
}

// parseCredentials reads {email, password} from a JSON body or a urlencoded
// form, depending on Content-Type.
func parseCredentials(r *http.Request) (*credentials, *AuthError) {
	creds := &credentials{}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			return nil, NewAuthError(ErrCodeMissingField, "Error parsing form", "")
		}
		creds.Email = r.FormValue("email")
		creds.Password = r.FormValue("password")
	} else {
		if err := json.NewDecoder(r.Body).Decode(creds); err != nil {
			return nil, NewAuthError(ErrCodeMissingField, "Invalid post body", "")
		}
	}
	creds.Email = strings.TrimSpace(creds.Email)
	return creds, nil
}

func validateSignup(creds *credentials) *AuthError {
	if creds.Email == "" {
		return NewAuthError(ErrCodeMissingField, "Email is required", "email")
	}
	if !emailRegex.MatchString(creds.Email) {
		return NewAuthError(ErrCodeInvalidEmail, "Invalid email format", "email")
	}
	if creds.Password == "" {
		return NewAuthError(ErrCodeMissingField, "Password is required", "password")
	}
	if len(creds.Password) < minPasswordLength {
		return NewAuthError(ErrCodeWeakPassword, "Password must be at least 8 characters", "password")
	}
	return nil
}

func validateSignin(creds *credentials) *AuthError {
	if creds.Email == "" {
		return NewAuthError(ErrCodeMissingField, "Email is required", "email")
	}
	if !emailRegex.MatchString(creds.Email) {
		return NewAuthError(ErrCodeInvalidEmail, "Invalid email format", "email")
	}
	if creds.Password == "" {
		return NewAuthError(ErrCodeMissingField, "Password is required", "password")
	}
	return nil
}

// invalidCredentials writes the single 401 used for both unknown-email and
// wrong-password failures.
func (a *Auth) invalidCredentials(w http.ResponseWriter) {
	writeAuthError(w, NewAuthError(ErrCodeInvalidCreds, "Invalid credentials", "password"), http.StatusUnauthorized)
}

// internalError logs the real failure and returns a generic 500 that leaks
// no detail to the caller.
func (a *Auth) internalError(w http.ResponseWriter, msg string, err error) {
	a.logger().Error(msg, "err", err)
	writeAuthError(w, NewAuthError(ErrCodeInternal, "Something went wrong. Please try again.", ""), http.StatusInternalServerError)
}

func writeAuthError(w http.ResponseWriter, authErr *AuthError, status int) {
	respondJSON(w, status, authErr)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func isFormRequest(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data")
}

func (a *Auth) cookies() *SessionCookies {
	if a.Cookies != nil {
		return a.Cookies
	}
	return &SessionCookies{}
}

func (a *Auth) signinLifetime() time.Duration {
	if a.SigninTokenLifetime > 0 {
		return a.SigninTokenLifetime
	}
	return DefaultTokenLifetime
}

func (a *Auth) signupLifetime() time.Duration {
	if a.SignupTokenLifetime > 0 {
		return a.SignupTokenLifetime
	}
	return DefaultTokenLifetime
}

func (a *Auth) postLoginURL() string {
	if a.PostLoginURL != "" {
		return a.PostLoginURL
	}
	return "/dashboard"
}

func (a *Auth) postLogoutURL() string {
	if a.PostLogoutURL != "" {
		return a.PostLogoutURL
	}
	return "/signin"
}

func (a *Auth) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
