package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
)

var (
	findTriplesToolName    = "rdf_find_triples"
	findTriplesDescription = "Find triples in the knowledge graph matching a pattern. Omitted fields are wildcards. URIs and CURIEs are accepted the same way as on insert. Results use wire format: IRIs in angle brackets, literals in quotes, blank nodes as _:id."
)

// FindTriplesInput represents the input arguments for the find tool.
// Every field is optional; an absent field matches anything. Pointers
// distinguish absent from explicitly empty, which is an error.
type FindTriplesInput struct {
	Subject   *string `json:"subject,omitempty" jsonschema:"subject to match, as an absolute URI or CURIE"`
	Predicate *string `json:"predicate,omitempty" jsonschema:"predicate to match, as an absolute URI or CURIE"`
	Object    *string `json:"object,omitempty" jsonschema:"object to match; URIs and CURIEs match IRI nodes, anything else matches literals"`
	GraphName string  `json:"graph_name,omitempty" jsonschema:"named graph to search; empty searches every graph"`
}

// QuadResult is one matched quad in wire format.
type QuadResult struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Graph     string `json:"graph"`
}

// FindTriplesOutput represents the output of the find tool.
type FindTriplesOutput struct {
	Results []QuadResult `json:"results"`
	Count   int          `json:"count"`
}

// handleFindTriples processes a pattern-match request.
func (s *Server) handleFindTriples(ctx context.Context, req *mcp.CallToolRequest, input FindTriplesInput) (*mcp.CallToolResult, FindTriplesOutput, error) {
	logger := s.config.Logger

	pattern, err := s.buildPattern(input)
	if err != nil {
		return errorResult(err.Error()), FindTriplesOutput{}, nil
	}

	var quads []store.Quad
	err = s.config.Manager.View(ctx, func(engine store.Engine) error {
		var err error
		quads, err = engine.QuadsForPattern(ctx, pattern)
		return err
	})
	if err != nil {
		logger.Error("failed to find triples", zap.Error(err))
		return errorResult(fmt.Sprintf("failed to find triples: %v", err)), FindTriplesOutput{}, nil
	}

	results := make([]QuadResult, len(quads))
	for i, q := range quads {
		results[i] = QuadResult{
			Subject:   q.Subject.String(),
			Predicate: q.Predicate.String(),
			Object:    q.Object.String(),
			Graph:     rdf.GraphDisplay(q.Graph),
		}
	}

	output := FindTriplesOutput{
		Results: results,
		Count:   len(results),
	}

	logger.Debug("MCP find triples request", zap.Int("matches", output.Count))

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal find output", zap.Error(err))
		return errorResult(fmt.Sprintf("failed to serialize results: %v", err)), FindTriplesOutput{}, nil
	}

	return textResult(string(jsonBytes)), output, nil
}

// buildPattern resolves the bound positions of a find request. A bound
// graph name narrows both the match and the CURIE resolution scope. A
// bound but empty or whitespace-only value is an error, not a wildcard.
func (s *Server) buildPattern(input FindTriplesInput) (store.Pattern, error) {
	var pattern store.Pattern

	graphScope := ""
	if input.GraphName != "" {
		graph, err := rdf.GraphIRI(s.config.Namespace, input.GraphName)
		if err != nil {
			return store.Pattern{}, fmt.Errorf("graph name: %w", err)
		}
		pattern.Graph = &graph
		graphScope = graph.Value
	}

	resolver := s.config.Prefixes.Resolver(graphScope)

	if input.Subject != nil {
		subject, err := rdf.ResolveIdentifier(*input.Subject, resolver)
		if err != nil {
			return store.Pattern{}, fmt.Errorf("subject: %w", err)
		}
		pattern.Subject = &subject
	}
	if input.Predicate != nil {
		predicate, err := rdf.ResolveIdentifier(*input.Predicate, resolver)
		if err != nil {
			return store.Pattern{}, fmt.Errorf("predicate: %w", err)
		}
		pattern.Predicate = &predicate
	}
	if input.Object != nil {
		if rdf.IsEmptyOrWhitespace(*input.Object) {
			return store.Pattern{}, fmt.Errorf("object: %w", rdf.ErrEmptyValue)
		}
		object := rdf.ResolveObject(*input.Object, resolver)
		pattern.Object = &object
	}

	return pattern, nil
}
