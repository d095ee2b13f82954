package api_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/courtside/internal/api"
	"github.com/mcoot/courtside/internal/testutil"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) CleanExpiredSessions() int {
	c.calls.Add(1)
	return 1
}

func localConfig() api.ServerConfig {
	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.SessionSweep = 0
	cfg.ShutdownTimeout = 2 * time.Second
	return cfg
}

// runServer starts srv and returns a stop func that cancels it and waits for Run
func runServer(t *testing.T, srv *api.Server) (stop func() error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case <-srv.Ready():
	case err := <-done:
		cancel()
		t.Fatalf("server did not start: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("server did not bind in time")
	}

	return func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop in time")
			return nil
		}
	}
}

func TestServerRunServesUntilCancelled(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "court open")
	})
	srv := api.NewServer(handler, localConfig(), nil, logger)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	stop := runServer(t, srv)
	addr := srv.Addr()
	assert.NotEqual(t, "127.0.0.1:0", addr)

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "court open", string(body))

	require.NoError(t, stop())

	_, err = net.DialTimeout("tcp", addr, time.Second)
	assert.Error(t, err, "listener should be closed after shutdown")

	msgs := logs.Messages()
	assert.Contains(t, msgs, "courtside listening")
	assert.Contains(t, msgs, "draining requests")
	assert.Equal(t, "courtside stopped", msgs[len(msgs)-1])
}

func TestServerSweepsSessionsOnlyWhileRunning(t *testing.T) {
	sweeper := &countingSweeper{}
	cfg := localConfig()
	cfg.SessionSweep = 5 * time.Millisecond
	srv := api.NewServer(http.NotFoundHandler(), cfg, sweeper, testutil.NopLogger())

	stop := runServer(t, srv)
	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, stop())

	after := sweeper.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, sweeper.calls.Load())
}

func TestServerRunFailsWhenPortTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	cfg := localConfig()
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	srv := api.NewServer(http.NotFoundHandler(), cfg, nil, testutil.NopLogger())

	err = srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")

	select {
	case <-srv.Ready():
		t.Fatal("Ready should stay open when binding fails")
	default:
	}
}
