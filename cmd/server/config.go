package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcoot/courtside/internal/api"
	"github.com/mcoot/courtside/internal/factory"
	"github.com/mcoot/courtside/internal/services/auth"
	redisstorage "github.com/mcoot/courtside/internal/storage/redis"
)

// Config is the server configuration gathered from flags and COURTSIDE_* env vars
type Config struct {
	host            string
	port            int
	storage         string
	redisURL        string
	redisPoolSize   int
	guestTTL        time.Duration
	lineupTTL       time.Duration
	snapshotTTL     time.Duration
	sessionDuration time.Duration
	sessionSweep    time.Duration
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	staticDir       string
	logLevel        string
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	switch c.storage {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.redisURL == "" {
			return errors.New("--redis-url is required when --storage=redis")
		}
	default:
		return fmt.Errorf("invalid storage type %q (want memory or redis)", c.storage)
	}
	if _, err := parseLevel(c.logLevel); err != nil {
		return err
	}
	return nil
}

func (c *Config) serverConfig() api.ServerConfig {
	sc := api.DefaultServerConfig()
	sc.Host = c.host
	sc.Port = c.port
	sc.ReadTimeout = c.readTimeout
	sc.WriteTimeout = c.writeTimeout
	sc.ShutdownTimeout = c.shutdownTimeout
	sc.SessionSweep = c.sessionSweep
	return sc
}

func (c *Config) factoryConfig() factory.Config {
	fc := factory.Config{
		AuthConfig:  auth.Config{SessionDuration: c.sessionDuration},
		StorageType: c.storage,
	}
	if c.storage == factory.StorageTypeRedis {
		rc := redisstorage.DefaultConfig()
		rc.URL = c.redisURL
		rc.PoolSize = c.redisPoolSize
		rc.GuestCoachTTL = c.guestTTL
		rc.LineupTTL = c.lineupTTL
		rc.SnapshotTTL = c.snapshotTTL
		fc.RedisConfig = &rc
	}
	return fc
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("COURTSIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "courtside-server",
		Short: "Serve the courtside lineup editor and JSON API",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	redisDefaults := redisstorage.DefaultConfig()
	serverDefaults := api.DefaultServerConfig()

	fs.StringVarP(&cfg.host, "host", "b", serverDefaults.Host, "address to bind to (env: COURTSIDE_HOST)")
	fs.IntVarP(&cfg.port, "port", "p", serverDefaults.Port, "port to listen on (env: COURTSIDE_PORT)")
	fs.StringVar(&cfg.storage, "storage", factory.StorageTypeMemory, "storage backend: memory, redis (env: COURTSIDE_STORAGE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL (env: COURTSIDE_REDIS_URL)")
	fs.IntVar(&cfg.redisPoolSize, "redis-pool-size", redisDefaults.PoolSize, "redis connection pool size (env: COURTSIDE_REDIS_POOL_SIZE)")
	fs.DurationVar(&cfg.guestTTL, "guest-ttl", redisDefaults.GuestCoachTTL, "lifetime of guest coaches in redis, 0 to keep forever (env: COURTSIDE_GUEST_TTL)")
	fs.DurationVar(&cfg.lineupTTL, "lineup-ttl", redisDefaults.LineupTTL, "lifetime of idle lineups in redis, 0 to keep forever (env: COURTSIDE_LINEUP_TTL)")
	fs.DurationVar(&cfg.snapshotTTL, "snapshot-ttl", redisDefaults.SnapshotTTL, "lifetime of saved setups in redis, 0 to keep forever (env: COURTSIDE_SNAPSHOT_TTL)")
	fs.DurationVar(&cfg.sessionDuration, "session-duration", auth.DefaultConfig().SessionDuration, "session lifetime (env: COURTSIDE_SESSION_DURATION)")
	fs.DurationVar(&cfg.sessionSweep, "session-sweep", 10*time.Minute, "how often expired sessions are dropped, 0 to disable (env: COURTSIDE_SESSION_SWEEP)")
	fs.DurationVar(&cfg.readTimeout, "read-timeout", serverDefaults.ReadTimeout, "request read timeout (env: COURTSIDE_READ_TIMEOUT)")
	fs.DurationVar(&cfg.writeTimeout, "write-timeout", serverDefaults.WriteTimeout, "response write timeout (env: COURTSIDE_WRITE_TIMEOUT)")
	fs.DurationVar(&cfg.shutdownTimeout, "shutdown-timeout", serverDefaults.ShutdownTimeout, "grace period for in-flight requests (env: COURTSIDE_SHUTDOWN_TIMEOUT)")
	fs.StringVar(&cfg.staticDir, "static-dir", "", "directory of static assets, found automatically if empty (env: COURTSIDE_STATIC_DIR)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error (env: COURTSIDE_LOG_LEVEL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
