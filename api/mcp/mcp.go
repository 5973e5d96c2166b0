// Package mcp exposes the trellis quad store over the Model Context
// Protocol: four RDF tools plus export resources, served over stdio or
// streamable HTTP.
package mcp

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/trellis/pkg/prefix"
	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
	"github.com/papercomputeco/trellis/pkg/utils"
)

type Config struct {
	// Manager hands out store engine handles with the right lifetime.
	Manager *store.Manager

	// Prefixes is the process prefix registry backing CURIE expansion.
	Prefixes *prefix.Registry

	// Namespace is the base IRI simple graph names are appended to.
	// Defaults to rdf.DefaultNamespace.
	Namespace string

	// Logger is the configured zap logger
	Logger *zap.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates an MCP server with the RDF tools and graph resources.
func NewServer(c Config) (*Server, error) {
	if c.Manager == nil {
		return nil, errors.New("store manager is required")
	}
	if c.Prefixes == nil {
		return nil, errors.New("prefix registry is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if c.Namespace == "" {
		c.Namespace = rdf.DefaultNamespace
	}

	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "trellis",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	// Add tools
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        addTriplesToolName,
		Description: addTriplesDescription,
	}, s.handleAddTriples)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        findTriplesToolName,
		Description: findTriplesDescription,
	}, s.handleFindTriples)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        sparqlQueryToolName,
		Description: sparqlQueryDescription,
	}, s.handleSparqlQuery)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        definePrefixToolName,
		Description: definePrefixDescription,
	}, s.handleDefinePrefix)

	s.addResources(mcpServer)

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves the MCP protocol over stdin/stdout until ctx is cancelled.
// Logs must go to stderr in this mode; stdout carries the protocol.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// errorResult wraps a message as a failed tool call. Tool failures travel
// inside the result so the client model can read and react to them.
func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}
}

// textResult wraps serialized output as a successful tool call.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
