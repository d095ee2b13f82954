package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/courtside/internal/api"
	"github.com/mcoot/courtside/internal/factory"
	"github.com/mcoot/courtside/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "courtside-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/courtside")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "COURTSIDE_TOKEN=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer runs the courtside server on a free port for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	// API and editor on one router, as cmd/server mounts them
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
		StaticDir:        filepath.Join(findProjectRoot(t), "internal/web/static"),
	})

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(r, cfg, app.AuthService, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	select {
	case <-server.Ready():
	case err := <-done:
		cancel()
		t.Fatalf("server failed to start: %v", err)
	}

	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			cancel()
			if err := <-done; err != nil {
				t.Logf("server error: %v", err)
			}
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Coach struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"coach"`
	SessionToken string `json:"session_token"`
}

type lineupResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Roster []struct {
		Number  int    `json:"number"`
		Name    string `json:"name"`
		Libero  bool   `json:"libero"`
		OnCourt bool   `json:"on_court"`
	} `json:"roster"`
	Court struct {
		Slots []struct {
			Slot     int  `json:"slot"`
			Occupied bool `json:"occupied"`
			Player   *int `json:"player"`
		} `json:"slots"`
		Placements []struct {
			Number int  `json:"number"`
			Slot   *int `json:"slot"`
		} `json:"placements"`
	} `json:"court"`
	Log []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	} `json:"log"`
}

type substitutionResponse struct {
	Log struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	} `json:"log"`
	Lineup lineupResponse `json:"lineup"`
}

type snapshotResponse struct {
	LineupID string `json:"lineup_id"`
	Key      string `json:"key"`
	Records  []struct {
		ID       string `json:"id"`
		Rotation *int   `json:"rotation"`
	} `json:"records"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_CoachCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("coach", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Coach.DisplayName)
	assert.True(t, authResp.Coach.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Token should be saved in the token file
	output, err = cli.run("coach", "me")
	require.NoError(t, err, "output: %s", output)

	var coach struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &coach))
	assert.Equal(t, "Alice", coach.DisplayName)
	assert.Equal(t, authResp.Coach.ID, coach.ID)
}

func TestCLI_FullEditingFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("coach", "guest", "--name", "Coach")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("lineup", "create", "--name", "Finals", "--policy", "preserve")
	require.NoError(t, err, "output: %s", output)
	var lineup lineupResponse
	require.NoError(t, json.Unmarshal([]byte(output), &lineup))
	require.NotEmpty(t, lineup.ID)
	assert.Len(t, lineup.Roster, 7)
	id := lineup.ID

	// Fill the back row
	for _, n := range []string{"1", "2", "3"} {
		output, err = cli.run("court", "place", id, n)
		require.NoError(t, err, "output: %s", output)
	}
	require.NoError(t, json.Unmarshal([]byte(output), &lineup))
	for slot := 0; slot < 3; slot++ {
		assert.True(t, lineup.Court.Slots[slot].Occupied, "slot %d", slot)
	}

	// Regular substitution keeps the slot
	output, err = cli.run("sub", id, "1", "4")
	require.NoError(t, err, "output: %s", output)
	var sub substitutionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sub))
	assert.Equal(t, "#1 Alice → #4 Diana", sub.Log.Text)
	require.NotNil(t, sub.Lineup.Court.Slots[0].Player)
	assert.Equal(t, 4, *sub.Lineup.Court.Slots[0].Player)

	// Libero in for a back-row player
	output, err = cli.run("libero", id, "7", "2")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &sub))
	assert.Equal(t, "Libero #7 Libby in for #2 Bob", sub.Log.Text)
	assert.Equal(t, "libero", sub.Log.Kind)

	// Save, clear and restore
	output, err = cli.run("snapshot", "save", id)
	require.NoError(t, err, "output: %s", output)
	var snap snapshotResponse
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	assert.Equal(t, id, snap.LineupID)
	assert.Len(t, snap.Records, 3)

	output, err = cli.run("court", "clear", id)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &lineup))
	assert.Empty(t, lineup.Court.Placements)

	output, err = cli.run("snapshot", "restore", id)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &lineup))
	assert.Len(t, lineup.Court.Placements, 3)
	assert.Len(t, lineup.Log, 2)

	// Rename through the free-text action
	output, err = cli.run("action", id, "3", "name", "Charles")
	require.NoError(t, err, "output: %s", output)
	var action messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &action))
	assert.Contains(t, action.Message, "Charles")

	// Delete
	output, err = cli.run("lineup", "delete", id)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Deleted lineup "+id)

	output, err = cli.run("lineup", "get", id)
	require.Error(t, err)
	assert.Contains(t, output, "not found")
}

func TestCLI_EditsShowInWebEditor(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("coach", "guest", "--name", "Coach")
	require.NoError(t, err, "output: %s", output)
	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))

	output, err = cli.run("lineup", "create")
	require.NoError(t, err, "output: %s", output)
	var lineup lineupResponse
	require.NoError(t, json.Unmarshal([]byte(output), &lineup))

	output, err = cli.run("court", "place", lineup.ID, "5", "--slot", "4")
	require.NoError(t, err, "output: %s", output)

	// The same session cookie opens the HTML editor
	u, err := url.Parse(ts.addr)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodGet, ts.addr+"/lineups/"+lineup.ID, nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "session", Value: authResp.SessionToken, Path: "/", Domain: u.Hostname()})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.True(t, strings.Contains(html, `id="player-5"`), "editor should show #5 on court")
	assert.Contains(t, html, "top:100px;left:250px")
}
