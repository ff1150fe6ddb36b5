// Package server is the HTTP dispatch layer: it binds requests into
// typed parameters, calls the query engines, and serializes their
// results. No query logic lives here.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/queryx/queryd/internal/config"
	"github.com/queryx/queryd/internal/ratelimit"
)

// Version is reported by the service banner endpoint.
const Version = "1.0.0"

type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	router  *gin.Engine
	limiter *ratelimit.Limiter
}

// New builds the router with its middleware chain and routes.
func New(cfg *config.Config, log *slog.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		log:     log,
		limiter: ratelimit.New(cfg.RateLimit, cfg.RateBurst),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(log))
	router.Use(s.rateLimit())
	router.Use(maxBody(cfg.MaxBodyBytes))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	s.router = router
	s.routes()
	return s
}

func corsConfig(origins []string) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cc.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	if len(origins) == 1 && origins[0] == "*" {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cc
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadTimeout:       s.cfg.RequestTimeout,
		WriteTimeout:      s.cfg.RequestTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", slog.String("addr", s.cfg.Listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) routes() {
	s.router.GET("/", s.getBanner)
	s.router.GET("/health", s.getHealth)

	regex := s.router.Group("/regex")
	{
		regex.POST("/match", s.postMatch)
		regex.POST("/findall", s.postFindAll)
		regex.POST("/substitute", s.postSubstitute)
		regex.POST("/split", s.postSplit)
		regex.POST("/validate", s.postValidate)
		regex.GET("/flags", s.getFlags)
	}

	bulk := s.router.Group("/regex/bulk")
	{
		bulk.POST("/match", s.postBulkMatch)
		bulk.POST("/findall", s.postBulkFindAll)
		bulk.POST("/substitute", s.postBulkSubstitute)
		bulk.POST("/split", s.postBulkSplit)
		bulk.GET("/info", s.getBulkInfo)
	}

	jp := s.router.Group("/jsonpath")
	{
		jp.POST("/search", s.postSearch)
		jp.POST("/load-and-search", s.postLoadAndSearch)
		jp.POST("/search-all", s.postSearchAll)
		jp.POST("/load-and-search-all", s.postLoadAndSearchAll)
		jp.GET("/info", s.getJSONPathInfo)
	}
}

func (s *Server) getBanner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "queryd pattern matching query service",
		"version": Version,
	})
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
