package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bytethedealer/blackjack-node/pkg/network"
)

// StatusResponse describes the running dealer.
type StatusResponse struct {
	Name      string        `json:"name"`
	TCPPort   uint16        `json:"tcpPort"`
	UDPPort   int           `json:"udpPort"`
	Uptime    string        `json:"uptime"`
	Stats     network.Stats `json:"stats"`
	CheckedAt time.Time     `json:"checkedAt"`
}

// handleStatus handles GET /api/v1/status
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Name:      s.game.Name,
		TCPPort:   s.game.TCPPort(),
		UDPPort:   s.game.UDPPort(),
		Uptime:    s.game.Uptime().Round(time.Second).String(),
		Stats:     s.game.Stats(),
		CheckedAt: time.Now(),
	})
}

// handleStats handles GET /api/v1/stats
func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.game.Stats())
}

// handleHealth handles GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}
