// Package api provides the HTTP API server implementation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wallet-roaster/internal/logging"
	"github.com/wallet-roaster/internal/service"
	"github.com/wallet-roaster/internal/types"
)

// Service interfaces for dependency injection and testing

// WalletServiceInterface defines the interface for wallet snapshot operations
type WalletServiceInterface interface {
	GetSnapshot(ctx context.Context, address string) (*types.WalletData, error)
	Refresh(ctx context.Context, address string) (*types.WalletData, error)
	GetChart(ctx context.Context, address string) (*service.ChartView, error)
}

// RoastServiceInterface defines the interface for roast generation
type RoastServiceInterface interface {
	GenerateRoast(ctx context.Context, address string, engine service.RoastEngine) (*types.RoastResult, error)
}

// HealthChecker reports readiness of a backing dependency
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP API server.
type Server struct {
	router        *mux.Router
	httpServer    *http.Server
	walletService WalletServiceInterface
	roastService  RoastServiceInterface
	cacheHealth   HealthChecker
	config        *ServerConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimitRPS    int // Per-client requests per second
	RateLimitBurst  int
}

// NewServer creates a new API server instance.
func NewServer(
	config *ServerConfig,
	walletService WalletServiceInterface,
	roastService RoastServiceInterface,
	cacheHealth HealthChecker,
) *Server {
	s := &Server{
		router:        mux.NewRouter(),
		walletService: walletService,
		roastService:  roastService,
		cacheHealth:   cacheHealth,
		config:        config,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	rateLimiter := NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)

	// Set up middleware (order matters!)
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
	s.router.Use(CORSMiddleware)
	s.router.Use(RateLimitMiddleware(rateLimiter)) // Rate limiting after CORS
	s.router.Use(CompressionMiddleware)

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// Wallet endpoints
	api.HandleFunc("/wallets/{address}", s.handleGetWallet).Methods("GET")
	api.HandleFunc("/wallets/{address}/refresh", s.handleRefreshWallet).Methods("POST")
	api.HandleFunc("/wallets/{address}/insights", s.handleGetInsights).Methods("GET")
	api.HandleFunc("/wallets/{address}/chart", s.handleGetChart).Methods("GET")

	// Roast endpoints
	api.HandleFunc("/wallets/{address}/roast", s.handleGenerateRoast).Methods("POST")

	// Preflight requests need a matching route for the middleware chain to
	// run; CORSMiddleware short-circuits them before this handler
	s.router.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
}

// Handler returns the configured HTTP handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	logging.WithField("addr", s.httpServer.Addr).Info("Starting API server")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
