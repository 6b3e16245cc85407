package main

import (
	"database/sql"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/panyam/authgate"
)

type webApp struct {
	db     *sql.DB
	logger *slog.Logger
}

var signinPage = template.Must(template.New("signin").Parse(`<!DOCTYPE html>
<html>
<head><title>Sign In</title></head>
<body>
<h1>Sign In</h1>
<form method="POST" action="/auth/signin">
	<label>Email: <input type="email" name="email" required></label>
	<label>Password: <input type="password" name="password" required></label>
	<button type="submit">Sign In</button>
</form>
<p>No account? <a href="/signup">Sign up</a></p>
</body>
</html>`))

var signupPage = template.Must(template.New("signup").Parse(`<!DOCTYPE html>
<html>
<head><title>Sign Up</title></head>
<body>
<h1>Sign Up</h1>
<form method="POST" action="/auth/signup">
	<label>Email: <input type="email" name="email" required></label>
	<label>Password: <input type="password" name="password" required minlength="8"></label>
	<button type="submit">Create Account</button>
</form>
<p>Already registered? <a href="/signin">Sign in</a></p>
</body>
</html>`))

var dashboardPage = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Dashboard</title></head>
<body>
<h1>Welcome back, {{.DisplayName}}!</h1>
<p>You are signed in as {{.Email}}.</p>
<form method="POST" action="/auth/logout">
	<button type="submit">Log Out</button>
</form>
</body>
</html>`))

func (app *webApp) showSignin(w http.ResponseWriter, r *http.Request) {
	app.render(w, signinPage, nil)
}

func (app *webApp) showSignup(w http.ResponseWriter, r *http.Request) {
	app.render(w, signupPage, nil)
}

// showDashboard runs behind the session guard, so the claims are always in
// the request context here.
func (app *webApp) showDashboard(w http.ResponseWriter, r *http.Request) {
	claims := authgate.ClaimsFromContext(r.Context())
	if claims == nil {
		http.Redirect(w, r, "/signin", http.StatusFound)
		return
	}
	app.render(w, dashboardPage, map[string]string{
		"DisplayName": claims.DisplayName(),
		"Email":       claims.Email,
	})
}

func (app *webApp) healthz(w http.ResponseWriter, r *http.Request) {
	if err := app.db.PingContext(r.Context()); err != nil {
		app.logger.Warn("healthcheck failed", "err", err)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (app *webApp) render(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		app.logger.Error("template render failed", "err", err)
	}
}
