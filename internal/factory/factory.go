package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/courtside/internal/dependencies/clock"
	"github.com/mcoot/courtside/internal/dependencies/random"
	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/services/court"
	"github.com/mcoot/courtside/internal/services/lineup"
	"github.com/mcoot/courtside/internal/services/roster"
	"github.com/mcoot/courtside/internal/services/snapshot"
	"github.com/mcoot/courtside/internal/services/substitution"
	"github.com/mcoot/courtside/internal/storage"
	"github.com/mcoot/courtside/internal/storage/memory"
	redisstorage "github.com/mcoot/courtside/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Logger *slog.Logger

	// Services
	RosterService      *roster.Service
	CourtService       *court.Service
	SubstitutionEngine *substitution.Engine
	SnapshotService    *snapshot.Service
	LineupController   *lineup.Controller
	AuthService        *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), authCfg, logger), nil
}

// newStorage creates the storage backend named by the config
func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	rosterService := roster.New(logger)
	courtService := court.New(rnd, clk, logger)
	substitutionEngine := substitution.New(courtService, rnd, clk, logger)
	snapshotService := snapshot.New(store, clk, logger)
	lineupController := lineup.NewController(
		store,
		rosterService,
		courtService,
		substitutionEngine,
		snapshotService,
		clk,
		rnd,
		logger,
	)
	authService := auth.New(store, clk, logger, authCfg)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Logger:             logger,
		RosterService:      rosterService,
		CourtService:       courtService,
		SubstitutionEngine: substitutionEngine,
		SnapshotService:    snapshotService,
		LineupController:   lineupController,
		AuthService:        authService,
	}
}
