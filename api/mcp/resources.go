package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
)

const (
	graphResourceURI       = "rdf://graph"
	prefixResourceURI      = "rdf://graph/prefix"
	graphResourceTemplate  = "rdf://graph/{+name}"
	nquadsMIMEType         = "application/n-quads"
	prefixSuffix           = "/prefix"
	graphResourceURIPrefix = graphResourceURI + "/"
)

// addResources registers the export surface: the whole store and the
// global prefix table as concrete resources, per-graph variants through a
// template. Graph names may contain slashes, so the template routes the
// trailing /prefix segment itself.
func (s *Server) addResources(mcpServer *mcp.Server) {
	mcpServer.AddResource(&mcp.Resource{
		URI:         graphResourceURI,
		Name:        "graph",
		Description: "Every quad in the store, serialized as N-Quads.",
		MIMEType:    nquadsMIMEType,
	}, s.readGraphResource)

	mcpServer.AddResource(&mcp.Resource{
		URI:         prefixResourceURI,
		Name:        "prefixes",
		Description: "The global namespace-prefix table as JSON.",
		MIMEType:    "application/json",
	}, s.readPrefixResource)

	mcpServer.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: graphResourceTemplate,
		Name:        "named-graph",
		Description: "Quads of one named graph as N-Quads; append /prefix for the graph's effective prefix table as JSON.",
		MIMEType:    nquadsMIMEType,
	}, s.readNamedGraphResource)
}

// readGraphResource exports the whole store.
func (s *Server) readGraphResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return s.exportGraph(ctx, req.Params.URI, nil)
}

// readPrefixResource serves the global prefix table.
func (s *Server) readPrefixResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return prefixTableResult(req.Params.URI, s.config.Prefixes.Global())
}

// readNamedGraphResource serves rdf://graph/{name} and
// rdf://graph/{name}/prefix.
func (s *Server) readNamedGraphResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	name := strings.TrimPrefix(req.Params.URI, graphResourceURIPrefix)
	if name == "" || name == req.Params.URI {
		return nil, fmt.Errorf("unsupported resource URI: %s", req.Params.URI)
	}

	wantPrefixes := strings.HasSuffix(name, prefixSuffix)
	if wantPrefixes {
		name = strings.TrimSuffix(name, prefixSuffix)
	}

	graph, err := rdf.GraphIRI(s.config.Namespace, name)
	if err != nil {
		return nil, fmt.Errorf("graph name: %w", err)
	}

	if wantPrefixes {
		return prefixTableResult(req.Params.URI, s.config.Prefixes.ForGraph(graph.Value))
	}
	return s.exportGraph(ctx, req.Params.URI, &graph)
}

func (s *Server) exportGraph(ctx context.Context, uri string, graph *rdf.Term) (*mcp.ReadResourceResult, error) {
	var nquads string
	err := s.config.Manager.View(ctx, func(engine store.Engine) error {
		var err error
		nquads, err = store.ExportNQuads(ctx, engine, graph)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("exporting graph: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: nquadsMIMEType,
				Text:     nquads,
			},
		},
	}, nil
}

func prefixTableResult(uri string, table map[string]string) (*mcp.ReadResourceResult, error) {
	jsonBytes, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("serializing prefix table: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
