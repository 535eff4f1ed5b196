// Package web serves the incident listing API over the persisted store.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocklandwatch/firewatch-tracker/internal/config"
	"github.com/rocklandwatch/firewatch-tracker/internal/domain"
	"github.com/rocklandwatch/firewatch-tracker/internal/observability"
	"github.com/rocklandwatch/firewatch-tracker/internal/pipeline"
)

// Store provides read access to the persisted incident set. Handlers re-read
// it on every request, so a mid-cycle atomic replace is always observed whole.
type Store interface {
	Load() ([]domain.Incident, error)
}

// Runner triggers an on-demand fetch-and-reconcile run.
type Runner interface {
	Run(ctx context.Context) (pipeline.Report, error)
}

// Server bundles the gin router and its dependencies.
type Server struct {
	cfg     *config.Config
	store   Store
	runner  Runner
	logger  *slog.Logger
	metrics *observability.Metrics
	engine  *gin.Engine
}

// New constructs a server with routes and middleware. When SITE_PASSWORD is
// configured, data routes require "Authorization: Bearer <password>"; health
// and metrics stay open.
func New(cfg *config.Config, store Store, runner Runner, logger *slog.Logger, metrics *observability.Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{cfg: cfg, store: store, runner: runner, logger: logger, metrics: metrics, engine: engine}

	engine.Use(gin.Recovery())
	engine.Use(s.observe())
	engine.Use(corsMiddleware())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	data := engine.Group("/")
	if cfg.SitePassword != "" {
		data.Use(bearerAuthMiddleware(cfg.SitePassword))
	}
	data.GET("/api/incidents", s.handleListIncidents)
	data.GET("/api/incidents/types", s.handleListTypes)
	data.GET("/download/csv", s.handleDownloadCSV)
	data.GET("/download/json", s.handleDownloadJSON)
	data.POST("/api/fetch", s.handleFetch)

	return s
}

// Engine exposes the underlying gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// ServeHTTP delegates to the router, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// observe counts requests by route and status code.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")) != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
