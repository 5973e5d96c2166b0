package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
)

const nquadsMIMEType = "application/n-quads"

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PrefixesResponse lists the global prefix table and every graph-scoped
// table keyed by graph IRI.
type PrefixesResponse struct {
	Global map[string]string            `json:"global"`
	Graphs map[string]map[string]string `json:"graphs"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleStats returns quad and graph counts.
func (s *Server) handleStats(c *fiber.Ctx) error {
	stats, err := s.collectStats(c)
	if err != nil {
		s.logger.Error("failed to collect stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to collect stats"})
	}
	return c.JSON(stats)
}

// handleGraphs lists the named graphs present in the store.
func (s *Server) handleGraphs(c *fiber.Ctx) error {
	stats, err := s.collectStats(c)
	if err != nil {
		s.logger.Error("failed to list graphs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to list graphs"})
	}

	return c.JSON(map[string]any{
		"count":  stats.GraphCount,
		"graphs": stats.Graphs,
	})
}

// handlePrefixes returns the prefix registry contents.
func (s *Server) handlePrefixes(c *fiber.Ctx) error {
	response := PrefixesResponse{
		Global: s.prefixes.Global(),
		Graphs: make(map[string]map[string]string),
	}
	for _, graph := range s.prefixes.Graphs() {
		response.Graphs[graph] = s.prefixes.ForGraph(graph)
	}
	return c.JSON(response)
}

// handleExport serves the whole store as N-Quads.
func (s *Server) handleExport(c *fiber.Ctx) error {
	return s.export(c, nil)
}

// handleExportGraph serves one named graph as N-Quads.
func (s *Server) handleExportGraph(c *fiber.Ctx) error {
	name := c.Params("*")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "graph name required"})
	}

	graph, err := rdf.GraphIRI(s.config.Namespace, name)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	return s.export(c, &graph)
}

func (s *Server) export(c *fiber.Ctx, graph *rdf.Term) error {
	ctx := c.Context()

	var nquads string
	err := s.manager.View(ctx, func(engine store.Engine) error {
		var err error
		nquads, err = store.ExportNQuads(ctx, engine, graph)
		return err
	})
	if err != nil {
		s.logger.Error("failed to export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to export"})
	}

	c.Set(fiber.HeaderContentType, nquadsMIMEType)
	return c.SendString(nquads)
}

func (s *Server) collectStats(c *fiber.Ctx) (*store.Stats, error) {
	ctx := c.Context()

	var stats *store.Stats
	err := s.manager.View(ctx, func(engine store.Engine) error {
		var err error
		stats, err = store.CollectStats(ctx, engine)
		return err
	})
	return stats, err
}
