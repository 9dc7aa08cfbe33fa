// Package api provides the HTTP status API for a running dealer.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bytethedealer/blackjack-node/pkg/network"
)

// Server exposes a read-only view of a GameServer over HTTP. The game
// itself never touches HTTP; this surface exists for operators.
type Server struct {
	game       *network.GameServer
	router     *gin.Engine
	port       int
	httpServer *http.Server
	limiter    *RateLimiter
}

// Config holds server configuration
type Config struct {
	Port       int
	EnableCORS bool
	RateLimit  int // Requests per minute
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Port:       8080,
		EnableCORS: true,
		RateLimit:  100,
	}
}

// NewServer creates a status API server for the given game server.
func NewServer(game *network.GameServer, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	server := &Server{
		game:   game,
		router: router,
		port:   config.Port,
	}

	server.setupMiddleware(config)
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(config *Config) {
	if config.EnableCORS {
		s.router.Use(CORSMiddleware())
	}
	s.limiter = NewRateLimiter(config.RateLimit)
	s.router.Use(s.limiter.Middleware())
	s.router.Use(LoggingMiddleware())
	s.router.Use(gin.Recovery())
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/status", s.handleStatus)
		v1.GET("/stats", s.handleStats)
	}

	// Health check endpoint (outside versioning)
	s.router.GET("/health", s.handleHealth)
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.limiter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	s.limiter.Stop()
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
