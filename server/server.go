// Package server serves the dashboard over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ezoic/caloriedash/config"
	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
	"github.com/ezoic/caloriedash/pkg/log"
	"github.com/ezoic/caloriedash/views"
)

const (
	sessionIdle     = 12 * time.Hour
	pruneInterval   = 10 * time.Minute
	shutdownTimeout = 5 * time.Second
)

// Server is the dashboard's HTTP front end.
type Server struct {
	cfg      config.Configs
	router   *gin.Engine
	views    *views.Views
	sessions *SessionStore
	logger   log.Logger
}

// New builds the router. gatherer backs /metrics; nil serves the default
// Prometheus registry.
func New(cfg config.Configs, v *views.Views, gatherer prometheus.Gatherer) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		cfg:      cfg,
		router:   gin.New(),
		views:    v,
		sessions: NewSessionStore(),
		logger:   log.GetLoggerWithName("server").With(log.ComponentKey, "server", log.PhaseKey, log.PhaseServing),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(accessLog(s.logger))

	s.router.GET("/health/self", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "true"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	s.router.GET("/charts/:name", s.chart)

	pages := s.router.Group("/", withSession(s.sessions, cfg.IsProduction(), s.logger))
	pages.GET("/", s.index)
	pages.POST("/nav/:page", s.navigate)
	pages.POST("/predict", s.predict)

	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Run serves on the configured port until ctx is cancelled, then shuts the
// listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.AppPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("Dashboard listening", "addr", srv.Addr)

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			if err == http.ErrServerClosed {
				return nil
			}
			return kcalErrors.Wrap(err, "listen")
		case <-ticker.C:
			if n := s.sessions.Prune(sessionIdle); n > 0 {
				s.logger.Debug("Idle sessions pruned", "pruned", n, "live", s.sessions.Len())
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			s.logger.Info("Dashboard shutting down")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return kcalErrors.Wrap(err, "shutdown")
			}
			return nil
		}
	}
}
