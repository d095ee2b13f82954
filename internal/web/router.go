package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	coremiddleware "github.com/mcoot/courtside/internal/middleware"
	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/services/lineup"
	"github.com/mcoot/courtside/internal/web/handler"
	"github.com/mcoot/courtside/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	LineupController *lineup.Controller
	SessionDuration  time.Duration // session cookie lifetime; defaults to auth.DefaultConfig
	StaticDir        string        // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the HTML editor routes on an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	sessionDuration := cfg.SessionDuration
	if sessionDuration == 0 {
		sessionDuration = auth.DefaultConfig().SessionDuration
	}

	// Create middleware
	loggingMiddleware := coremiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.LineupController, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService, sessionDuration)
	lineupHandler := handler.NewLineupHandler(cfg.LineupController, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for showing coach info in nav)
	public := r.NewRoute().Subrouter()
	public.Use(recoveryMiddleware)
	public.Use(loggingMiddleware)
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)

	// Auth actions (no auth required)
	public.HandleFunc("/auth/guest", authHandler.CreateGuest).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require auth)
	protected := r.PathPrefix("/lineups").Subrouter()
	protected.Use(recoveryMiddleware)
	protected.Use(loggingMiddleware)
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)

	protected.HandleFunc("", lineupHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/{id}", lineupHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/{id}/delete", lineupHandler.Delete).Methods(http.MethodPost)

	// Court
	protected.HandleFunc("/{id}/court/place", lineupHandler.Place).Methods(http.MethodPost)
	protected.HandleFunc("/{id}/court/clear", lineupHandler.Clear).Methods(http.MethodPost)
	protected.HandleFunc("/{id}/court/{number:[0-9]+}/move", lineupHandler.Move).Methods(http.MethodPost)
	protected.HandleFunc("/{id}/court/{number:[0-9]+}/remove", lineupHandler.Remove).Methods(http.MethodPost)

	// Substitutions
	protected.HandleFunc("/{id}/substitute", lineupHandler.Substitute).Methods(http.MethodPost)
	protected.HandleFunc("/{id}/libero", lineupHandler.LiberoIn).Methods(http.MethodPost)

	// Players
	protected.HandleFunc("/{id}/players/{number:[0-9]+}/action", lineupHandler.Action).Methods(http.MethodPost)
	protected.HandleFunc("/{id}/players/{number:[0-9]+}/rename", lineupHandler.Rename).Methods(http.MethodPost)

	// Snapshot
	protected.HandleFunc("/{id}/snapshot/save", lineupHandler.SaveSnapshot).Methods(http.MethodPost)
	protected.HandleFunc("/{id}/snapshot/restore", lineupHandler.RestoreSnapshot).Methods(http.MethodPost)
}
