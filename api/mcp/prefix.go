package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/trellis/pkg/rdf"
)

var (
	definePrefixToolName    = "rdf_define_prefix"
	definePrefixDescription = "Define or remove a namespace prefix for CURIE expansion. With a namespace_uri the prefix is defined; without one it is removed. An optional graph_name scopes the prefix to one named graph, shadowing the global table."
)

// DefinePrefixInput represents the input arguments for the prefix tool.
type DefinePrefixInput struct {
	Prefix       string `json:"prefix" jsonschema:"the prefix name, e.g. foaf"`
	NamespaceURI string `json:"namespace_uri,omitempty" jsonschema:"the namespace to bind; omit to remove the prefix"`
	GraphName    string `json:"graph_name,omitempty" jsonschema:"optional named graph to scope the prefix to"`
}

// DefinePrefixOutput represents the output of the prefix tool.
type DefinePrefixOutput struct {
	Action       string `json:"action"`
	Prefix       string `json:"prefix"`
	NamespaceURI string `json:"namespace_uri,omitempty"`
	Graph        string `json:"graph"`
}

// handleDefinePrefix updates the prefix registry. The registry is
// process-local; definitions do not survive a restart.
func (s *Server) handleDefinePrefix(ctx context.Context, req *mcp.CallToolRequest, input DefinePrefixInput) (*mcp.CallToolResult, DefinePrefixOutput, error) {
	logger := s.config.Logger

	prefixName, err := rdf.ValidatePrefix(input.Prefix)
	if err != nil {
		return errorResult(fmt.Sprintf("prefix: %v", err)), DefinePrefixOutput{}, nil
	}

	graph, err := rdf.GraphIRI(s.config.Namespace, input.GraphName)
	if err != nil {
		return errorResult(fmt.Sprintf("graph name: %v", err)), DefinePrefixOutput{}, nil
	}

	output := DefinePrefixOutput{
		Prefix: prefixName,
		Graph:  rdf.GraphDisplay(graph),
	}

	if input.NamespaceURI == "" {
		// Removal is idempotent; removing an undefined prefix is a no-op.
		s.config.Prefixes.Remove(graph.Value, prefixName)
		output.Action = "removed"
	} else {
		if err := rdf.ValidateNamespaceURI(input.NamespaceURI); err != nil {
			return errorResult(fmt.Sprintf("namespace: %v", err)), DefinePrefixOutput{}, nil
		}
		s.config.Prefixes.Define(graph.Value, prefixName, input.NamespaceURI)
		output.Action = "defined"
		output.NamespaceURI = input.NamespaceURI
	}

	logger.Debug("MCP prefix update",
		zap.String("action", output.Action),
		zap.String("prefix", prefixName),
		zap.String("graph", output.Graph),
	)

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal prefix output", zap.Error(err))
		return errorResult(fmt.Sprintf("failed to serialize results: %v", err)), DefinePrefixOutput{}, nil
	}

	return textResult(string(jsonBytes)), output, nil
}
