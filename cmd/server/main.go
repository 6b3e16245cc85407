// Command server runs the authgate web application: JSON auth endpoints
// under /auth/, HTML sign-in/sign-up pages, and a session-guarded dashboard.
package main

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/panyam/authgate"
	gormstore "github.com/panyam/authgate/stores/gorm"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get database handle", "err", err)
		os.Exit(1)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Error("failed to set migration dialect", "err", err)
		os.Exit(1)
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	session := scs.New()
	session.Lifetime = cfg.SessionLifetime()
	session.Cookie.HttpOnly = true
	session.Cookie.Secure = cfg.SecureCookies
	session.Cookie.SameSite = http.SameSiteLaxMode

	tokens := &authgate.TokenIssuer{
		SecretKey: []byte(cfg.JWTSecret),
		Issuer:    "authgate",
	}
	auth := &authgate.Auth{
		Store:               gormstore.NewUserStore(db),
		Tokens:              tokens,
		Cookies:             &authgate.SessionCookies{Secure: cfg.SecureCookies},
		SigninTokenLifetime: cfg.SigninTokenLifetime,
		SignupTokenLifetime: cfg.SignupTokenLifetime,
		Session:             session,
		Logger:              logger,
	}
	guard := &authgate.Middleware{
		SigninURL:   "/signin",
		VerifyToken: tokens.Verify,
		SessionGetter: func(r *http.Request, key string) string {
			return session.GetString(r.Context(), key)
		},
	}

	app := &webApp{db: sqlDB, logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/auth/signup", auth.HandleSignup).Methods(http.MethodPost)
	router.HandleFunc("/auth/signin", auth.HandleSignin).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout", auth.HandleLogout).Methods(http.MethodPost)
	router.Handle("/dashboard", guard.EnsureUser(http.HandlerFunc(app.showDashboard))).Methods(http.MethodGet)
	router.HandleFunc("/signin", app.showSignin).Methods(http.MethodGet)
	router.HandleFunc("/signup", app.showSignup).Methods(http.MethodGet)
	router.HandleFunc("/healthz", app.healthz).Methods(http.MethodGet)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	}).Methods(http.MethodGet)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           session.LoadAndSave(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
