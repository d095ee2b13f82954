package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/courtside/internal/factory"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	newCmd(cfg)

	require.NoError(t, cfg.validate())
	assert.Equal(t, 8080, cfg.port)
	assert.Equal(t, factory.StorageTypeMemory, cfg.storage)

	fc := cfg.factoryConfig()
	assert.Nil(t, fc.RedisConfig)
	assert.Equal(t, 24*time.Hour, fc.AuthConfig.SessionDuration)

	sc := cfg.serverConfig()
	assert.Equal(t, 15*time.Second, sc.ReadTimeout)
	assert.Equal(t, 60*time.Second, sc.WriteTimeout)
	assert.Equal(t, 30*time.Second, sc.ShutdownTimeout)
	assert.Equal(t, cfg.sessionSweep, sc.SessionSweep)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("COURTSIDE_PORT", "9090")
	t.Setenv("COURTSIDE_STORAGE", "redis")
	t.Setenv("COURTSIDE_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("COURTSIDE_LINEUP_TTL", "1h")
	t.Setenv("COURTSIDE_SESSION_DURATION", "2h")

	cfg := &Config{}
	newCmd(cfg)

	require.NoError(t, cfg.validate())
	assert.Equal(t, 9090, cfg.port)

	fc := cfg.factoryConfig()
	assert.Equal(t, factory.StorageTypeRedis, fc.StorageType)
	require.NotNil(t, fc.RedisConfig)
	assert.Equal(t, "redis://cache:6379/1", fc.RedisConfig.URL)
	assert.Equal(t, time.Hour, fc.RedisConfig.LineupTTL)
	assert.Equal(t, 2*time.Hour, fc.AuthConfig.SessionDuration)
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("COURTSIDE_PORT", "9090")

	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--port", "7070", "--log_level", "debug"}))

	assert.Equal(t, 7070, cfg.port)
	assert.Equal(t, "debug", cfg.logLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port out of range", func(c *Config) { c.port = 0 }, "invalid port"},
		{"redis without url", func(c *Config) { c.storage = factory.StorageTypeRedis }, "--redis-url"},
		{"unknown storage", func(c *Config) { c.storage = "disk" }, "invalid storage type"},
		{"bad log level", func(c *Config) { c.logLevel = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			newCmd(cfg)
			tt.mutate(cfg)

			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, "WARN", level.String())
}
