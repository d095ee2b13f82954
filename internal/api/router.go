package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/courtside/internal/api/handler"
	"github.com/mcoot/courtside/internal/api/middleware"
	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/services/lineup"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	LineupController *lineup.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the API routes under /api/v1 on an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	coachHandler := handler.NewCoachHandler(cfg.AuthService)
	lineupHandler := handler.NewLineupHandler(cfg.LineupController)
	courtHandler := handler.NewCourtHandler(cfg.LineupController)
	subHandler := handler.NewSubstitutionHandler(cfg.LineupController)
	playerHandler := handler.NewPlayerHandler(cfg.LineupController)
	snapshotHandler := handler.NewSnapshotHandler(cfg.LineupController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService, cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Coach routes (no auth required for creating coaches/logging in)
	api.HandleFunc("/coaches/guest", coachHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/coaches/register", coachHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/coaches/login", coachHandler.Login).Methods(http.MethodPost)

	// Protected coach routes
	coachProtected := api.PathPrefix("/coaches").Subrouter()
	coachProtected.Use(authMiddleware)
	coachProtected.HandleFunc("/me", coachHandler.GetMe).Methods(http.MethodGet)
	coachProtected.HandleFunc("/me/claim", coachHandler.Claim).Methods(http.MethodPost)

	// Lineup routes (all require auth)
	lineups := api.PathPrefix("/lineups").Subrouter()
	lineups.Use(authMiddleware)
	lineups.HandleFunc("", lineupHandler.Create).Methods(http.MethodPost)
	lineups.HandleFunc("", lineupHandler.List).Methods(http.MethodGet)
	lineups.HandleFunc("/{id}", lineupHandler.Get).Methods(http.MethodGet)
	lineups.HandleFunc("/{id}", lineupHandler.Delete).Methods(http.MethodDelete)

	// Court placement
	lineups.HandleFunc("/{id}/court", courtHandler.Place).Methods(http.MethodPost)
	lineups.HandleFunc("/{id}/court", courtHandler.Clear).Methods(http.MethodDelete)
	lineups.HandleFunc("/{id}/court/{number:[0-9]+}", courtHandler.Move).Methods(http.MethodPatch)
	lineups.HandleFunc("/{id}/court/{number:[0-9]+}", courtHandler.Remove).Methods(http.MethodDelete)

	// Substitutions
	lineups.HandleFunc("/{id}/substitutions", subHandler.Substitute).Methods(http.MethodPost)
	lineups.HandleFunc("/{id}/substitutions/candidates", subHandler.Candidates).Methods(http.MethodGet)
	lineups.HandleFunc("/{id}/libero", subHandler.LiberoIn).Methods(http.MethodPost)

	// Roster players
	lineups.HandleFunc("/{id}/players/{number:[0-9]+}", playerHandler.Rename).Methods(http.MethodPatch)
	lineups.HandleFunc("/{id}/players/{number:[0-9]+}/actions", playerHandler.Action).Methods(http.MethodPost)

	// Snapshot
	lineups.HandleFunc("/{id}/snapshot", snapshotHandler.Save).Methods(http.MethodPost)
	lineups.HandleFunc("/{id}/snapshot", snapshotHandler.Get).Methods(http.MethodGet)
	lineups.HandleFunc("/{id}/snapshot/restore", snapshotHandler.Restore).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
