package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytethedealer/blackjack-node/pkg/network"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	game := network.NewGameServer("API Test Dealer", 13122)
	require.NoError(t, game.Start())
	t.Cleanup(func() { game.Stop() })
	return NewServer(game, DefaultConfig())
}

func TestHealthEndpoint(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestStatusEndpoint(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest("GET", "/api/v1/status", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "API Test Dealer", body.Name)
	assert.Equal(t, 13122, body.UDPPort)
	assert.NotZero(t, body.TCPPort)
	assert.Equal(t, 0, body.Stats.ActiveSessions)
}

func TestStatsEndpoint(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats network.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Zero(t, stats.RoundsPlayed)
}

func TestRateLimitPerServer(t *testing.T) {
	game := network.NewGameServer("Rate Limit Dealer", 13122)
	require.NoError(t, game.Start())
	t.Cleanup(func() { game.Stop() })

	strict := NewServer(game, &Config{Port: 8080, RateLimit: 2})
	t.Cleanup(func() { strict.Stop() })
	relaxed := NewServer(game, &Config{Port: 8081, RateLimit: 100})
	t.Cleanup(func() { relaxed.Stop() })

	get := func(server *Server) int {
		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get(strict))
	assert.Equal(t, http.StatusOK, get(strict))
	assert.Equal(t, http.StatusTooManyRequests, get(strict))

	// A second server's limit is its own, not the first one's.
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(relaxed))
	}
}

func TestCORSPreflight(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/v1/status", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
