package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/mcoot/courtside/internal/api"
	"github.com/mcoot/courtside/internal/factory"
	"github.com/mcoot/courtside/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCmd(&Config{}).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *Config) error {
	level, _ := parseLevel(cfg.logLevel)

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fc := cfg.factoryConfig()
	fc.Logger = logger

	app, err := factory.New(fc)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	staticDir := cfg.staticDir
	if staticDir == "" {
		staticDir = findStaticDir()
	}

	// API and editor share one router
	r := mux.NewRouter()
	api.Register(r, api.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		LineupController: app.LineupController,
	})
	web.Register(r, web.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		LineupController: app.LineupController,
		SessionDuration:  cfg.sessionDuration,
		StaticDir:        staticDir,
	})

	server := api.NewServer(r, cfg.serverConfig(), app.AuthService, logger)
	logger.Info("starting courtside", slog.String("storage", cfg.storage))

	return server.Run(ctx)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	// Try common locations
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	// Default to relative path
	return "internal/web/static"
}
