// Package server exposes the name parser over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/cognicore/nameparser/internal/metrics"
	"github.com/cognicore/nameparser/pkg/nameparser"
	"github.com/cognicore/nameparser/pkg/nameparser/record"
	"github.com/cognicore/nameparser/pkg/nameparser/store"
)

// Config tunes the HTTP API
type Config struct {
	// CacheSize is the number of parse results kept in memory. Zero disables
	// the cache.
	CacheSize int
	// MaxBatch caps the names accepted by one batch request
	MaxBatch int
	// PrefixInFamily is the default contact layout for requests that do not
	// choose one
	PrefixInFamily bool
	// Languages are recorded with stored parse results
	Languages []string
	// Version is reported by the health endpoint
	Version string
}

// Server serves parse requests. The store is optional; without one the
// records endpoints answer 503.
type Server struct {
	echo     *echo.Echo
	parser   *nameparser.Parser
	store    store.Store
	records  *record.Builder
	cache    *lru.Cache[string, *nameparser.Name]
	validate *requestValidator
	logger   *zap.Logger
	cfg      Config
	started  time.Time
}

// New wires the routes and middleware
func New(parser *nameparser.Parser, st store.Store, logger *zap.Logger, cfg Config) (*Server, error) {
	if parser == nil {
		return nil, errors.New("server: parser is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 100
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	s := &Server{
		parser:   parser,
		store:    st,
		records:  record.New(),
		validate: newRequestValidator(),
		logger:   logger,
		cfg:      cfg,
		started:  time.Now(),
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, *nameparser.Name](cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = s.validate
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(RequestMetrics())

	s.echo = e
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api/v1")
	api.GET("/health", s.health)
	api.POST("/parse", s.parse)
	api.POST("/parse/batch", s.parseBatch)
	api.GET("/records", s.listRecords)
	api.GET("/records/:id", s.getRecord)
	api.GET("/stats", s.stats)

	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
