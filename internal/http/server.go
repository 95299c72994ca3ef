// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ClavisPass/ClavisPass-sub001/internal/config"
	"github.com/ClavisPass/ClavisPass-sub001/internal/metrics"
	vaultHTTP "github.com/ClavisPass/ClavisPass-sub001/internal/vault/http"
)

// Pinger is a storage backend that can be probed for readiness. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ReadinessChecker reports whether the cryptographic backend can serve requests.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// Server represents the vault API HTTP server.
type Server struct {
	storage     Pinger
	crypto      ReadinessChecker
	server      *http.Server
	router      *gin.Engine
	logger      *slog.Logger
	stopLimiter context.CancelFunc
}

// NewServer creates a new HTTP server. storage and crypto are probed by /ready; a nil
// value is reported as not ready.
func NewServer(
	storage Pinger,
	crypto ReadinessChecker,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		storage: storage,
		crypto:  crypto,
		logger:  logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
//
// Unlock routes (decrypt, open, change password) derive a key from a guessed password on
// every call, so they sit behind a per-IP rate limiter when enabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	contentHandler *vaultHTTP.ContentHandler,
	vaultHandler *vaultHTTP.VaultHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	var limiter gin.HandlerFunc
	if cfg.RateLimitEnabled {
		ctx, cancel := context.WithCancel(context.Background())
		s.stopLimiter = cancel
		limiter = IPRateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger)
	}
	unlock := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if limiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{limiter, h}
	}

	v1 := router.Group("/v1")
	{
		content := v1.Group("/vault")
		{
			content.POST("/encrypt", contentHandler.EncryptHandler)
			content.POST("/decrypt", unlock(contentHandler.DecryptHandler)...)
			content.POST("/inspect", contentHandler.InspectHandler)
		}

		vaults := v1.Group("/vaults")
		{
			vaults.GET("", vaultHandler.ListHandler)
			vaults.PUT("/:name", vaultHandler.SaveHandler)
			vaults.POST("/:name/open", unlock(vaultHandler.OpenHandler)...)
			vaults.POST("/:name/password", unlock(vaultHandler.ChangePasswordHandler)...)
			vaults.DELETE("/:name", vaultHandler.DeleteHandler)
		}
	}

	s.router = router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.stopLimiter != nil {
		s.stopLimiter()
	}
	return s.server.Shutdown(ctx)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler probes vault storage and the cryptographic backend.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := gin.H{
		"storage": componentStatus(s.storage == nil, func() error { return s.storage.PingContext(ctx) }),
		"crypto":  componentStatus(s.crypto == nil, func() error { return s.crypto.Ready(ctx) }),
	}

	for _, status := range components {
		if status != "ok" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

func componentStatus(missing bool, probe func() error) string {
	if missing || probe() != nil {
		return "error"
	}
	return "ok"
}
