package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/annel0/skyblob/internal/auth"
	"github.com/annel0/skyblob/internal/config"
	"github.com/annel0/skyblob/internal/session"
	"github.com/annel0/skyblob/internal/world"
)

type fakeGame struct {
	snap     session.Snapshot
	ended    bool
	restarts int
}

func (g *fakeGame) Snapshot() session.Snapshot { return g.snap }

func (g *fakeGame) End() error {
	if g.ended {
		return session.ErrEnded
	}
	g.ended = true
	return nil
}

func (g *fakeGame) Restart() { g.restarts++ }

func newTestServer(t *testing.T) (*RestServer, *fakeGame) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	a, err := auth.NewAdminAuth(config.AuthConfig{AdminPasswordHash: string(hash)})
	require.NoError(t, err)

	game := &fakeGame{snap: session.Snapshot{
		SessionID: "sess-1",
		FrameRate: 30,
		World: world.Stats{
			Tick:     120,
			BestEver: 900,
			Slots: []world.SlotStats{
				{Slot: 0, Present: true, Lives: 7, MaxLives: 10, Score: 40, Best: 55},
				{Slot: 1, Respawning: true, RespawnRemaining: 1.5},
			},
			Enemies: 3,
			Bullets: 8,
		},
	}}

	rs := NewRestServer(Config{Game: game, Auth: a, Registry: prometheus.NewRegistry()})
	return rs, game
}

func do(rs *RestServer, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, req)
	return w
}

func login(t *testing.T, rs *RestServer) string {
	t.Helper()
	w := do(rs, http.MethodPost, "/api/auth/login", LoginRequest{Password: "letmein"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	rs, _ := newTestServer(t)
	w := do(rs, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestScores(t *testing.T) {
	rs, _ := newTestServer(t)
	w := do(rs, http.MethodGet, "/api/scores", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ScoresResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(900), resp.BestEver)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, SlotScore{Slot: 0, Present: true, Score: 40, Best: 55, Lives: 7}, resp.Slots[0])
	assert.False(t, resp.Slots[1].Present)
}

func TestWorld(t *testing.T) {
	rs, _ := newTestServer(t)
	w := do(rs, http.MethodGet, "/api/world", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp WorldResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, uint64(120), resp.Tick)
	assert.Equal(t, 1, resp.Players)
	assert.Equal(t, 3, resp.Enemies)
	assert.Equal(t, 8, resp.Bullets)
}

func TestServerInfo(t *testing.T) {
	rs, _ := newTestServer(t)
	w := do(rs, http.MethodGet, "/api/server", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uptime"`)
}

func TestLogin(t *testing.T) {
	rs, _ := newTestServer(t)

	tests := []struct {
		name string
		body interface{}
		code int
	}{
		{"wrong password", LoginRequest{Password: "nope"}, http.StatusUnauthorized},
		{"missing password", map[string]string{}, http.StatusBadRequest},
		{"ok", LoginRequest{Password: "letmein"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(rs, http.MethodPost, "/api/auth/login", tt.body, "")
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestAdmin_RequiresToken(t *testing.T) {
	rs, game := newTestServer(t)

	w := do(rs, http.MethodPost, "/api/admin/session/end", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(rs, http.MethodPost, "/api/admin/session/end", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, game.ended)
}

func TestAdmin_EndAndRestart(t *testing.T) {
	rs, game := newTestServer(t)
	token := login(t, rs)

	w := do(rs, http.MethodPost, "/api/admin/session/end", nil, token)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, game.ended)

	w = do(rs, http.MethodPost, "/api/admin/session/end", nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(rs, http.MethodPost, "/api/admin/session/restart", nil, token)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, game.restarts)
}

func TestMetricsEndpoint(t *testing.T) {
	rs, _ := newTestServer(t)
	do(rs, http.MethodGet, "/health", nil, "")

	w := do(rs, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rest_api_http_request_duration_seconds")
}
