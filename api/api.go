package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/trellis/pkg/prefix"
	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
)

// Server is the HTTP API server over the quad store.
type Server struct {
	config   Config
	manager  *store.Manager
	prefixes *prefix.Registry
	logger   *zap.Logger
	app      *fiber.App
}

// NewServer creates a new API server. The manager and prefix registry are
// injected so they can be shared with the MCP server; mcpHandler, when
// non-nil, is mounted at /mcp.
func NewServer(config Config, manager *store.Manager, prefixes *prefix.Registry, mcpHandler http.Handler, logger *zap.Logger) (*Server, error) {
	if manager == nil {
		return nil, errors.New("store manager is required")
	}
	if prefixes == nil {
		return nil, errors.New("prefix registry is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if config.Namespace == "" {
		config.Namespace = rdf.DefaultNamespace
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		manager:  manager,
		prefixes: prefixes,
		logger:   logger,
		app:      app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/stats", s.handleStats)
	app.Get("/graphs", s.handleGraphs)
	app.Get("/prefixes", s.handlePrefixes)
	app.Get("/export", s.handleExport)
	// Graph names may contain slashes, so the graph export takes the rest
	// of the path rather than a single segment.
	app.Get("/export/*", s.handleExportGraph)

	if mcpHandler != nil {
		app.All("/mcp", adaptor.HTTPHandler(mcpHandler))
	}

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
