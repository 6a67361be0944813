package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gradtrack/gradtrack-core/internal/core/ports/driven"
	"github.com/gradtrack/gradtrack-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	gmailService driving.GmailService

	// Infrastructure
	identity    driven.IdentityVerifier
	settingsURL string // frontend settings page, callback redirect target
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	SettingsURL    string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        8080,
		Version:     "dev",
		SettingsURL: "http://localhost:3000/settings",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	gmailService driving.GmailService,
	identity driven.IdentityVerifier,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:       http.NewServeMux(),
		version:      cfg.Version,
		gmailService: gmailService,
		identity:     identity,
		settingsURL:  cfg.SettingsURL,
		db:           db,
		redisClient:  redisClient,
	}

	// Middleware chain: recovery outermost so panics in the other layers
	// are caught too
	var handler http.Handler = s.router
	if len(cfg.AllowedOrigins) > 0 {
		handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	}
	handler = NewLoggingMiddleware().Handler(handler)
	handler = NewRecoveryMiddleware().Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.identity)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Gmail integration endpoints
	s.router.Handle("POST /api/v1/gmail/connect",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGmailConnect)))
	// Callback is public - receives the browser redirect from Google; the
	// caller's session travels on the request itself
	s.router.HandleFunc("GET /api/v1/gmail/callback", s.handleGmailCallback)
	// Status is public - degrades to disconnected without a session
	s.router.HandleFunc("GET /api/v1/gmail/status", s.handleGmailStatus)
	s.router.Handle("POST /api/v1/gmail/disconnect",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGmailDisconnect)))

	// Deadline endpoints
	s.router.Handle("POST /api/v1/deadlines/preview",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeadlinePreview)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
