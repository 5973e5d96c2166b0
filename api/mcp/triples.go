package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
)

var (
	addTriplesToolName    = "rdf_add_triples"
	addTriplesDescription = "Add RDF triples to the knowledge graph. Subjects and predicates must be absolute URIs or CURIEs (e.g. foaf:name); objects become IRI nodes when they parse as a URI or CURIE and literal nodes otherwise. An optional graph_name partitions triples into a named graph."
)

// TripleInput is one triple in an add request.
type TripleInput struct {
	Subject   string `json:"subject" jsonschema:"the subject as an absolute URI or CURIE"`
	Predicate string `json:"predicate" jsonschema:"the predicate as an absolute URI or CURIE"`
	Object    string `json:"object" jsonschema:"the object; URIs and CURIEs become IRI nodes, anything else a literal"`
	GraphName string `json:"graph_name,omitempty" jsonschema:"optional named graph for this triple; empty means the default graph"`
}

// AddTriplesInput represents the input arguments for the add-triples tool.
type AddTriplesInput struct {
	Triples []TripleInput `json:"triples" jsonschema:"the triples to insert as one batch"`
}

// GraphSummary reports how many quads landed in one graph.
type GraphSummary struct {
	Graph string `json:"graph"`
	Count int    `json:"count"`
}

// AddTriplesOutput represents the output of the add-triples tool.
type AddTriplesOutput struct {
	Inserted int            `json:"inserted"`
	Graphs   []GraphSummary `json:"graphs"`
}

// handleAddTriples validates every triple in the batch, then inserts them
// in one engine call. Nothing is written unless the whole batch validates.
func (s *Server) handleAddTriples(ctx context.Context, req *mcp.CallToolRequest, input AddTriplesInput) (*mcp.CallToolResult, AddTriplesOutput, error) {
	logger := s.config.Logger

	if len(input.Triples) == 0 {
		return errorResult("no triples provided"), AddTriplesOutput{}, nil
	}

	logger.Debug("MCP add triples request", zap.Int("count", len(input.Triples)))

	quads := make([]store.Quad, 0, len(input.Triples))
	for i, t := range input.Triples {
		quad, err := s.buildQuad(t)
		if err != nil {
			return errorResult(fmt.Sprintf("triple %d: %v", i+1, err)), AddTriplesOutput{}, nil
		}
		quads = append(quads, quad)
	}

	err := s.config.Manager.Update(ctx, func(engine store.Engine) error {
		return engine.AddQuads(ctx, quads)
	})
	if err != nil {
		logger.Error("failed to insert triples", zap.Error(err))
		return errorResult(fmt.Sprintf("failed to insert triples: %v", err)), AddTriplesOutput{}, nil
	}

	output := AddTriplesOutput{
		Inserted: len(quads),
		Graphs:   summarizeGraphs(quads),
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal add triples output", zap.Error(err))
		return errorResult(fmt.Sprintf("failed to serialize results: %v", err)), AddTriplesOutput{}, nil
	}

	return textResult(string(jsonBytes)), output, nil
}

// buildQuad validates and resolves one triple input into a store quad.
func (s *Server) buildQuad(t TripleInput) (store.Quad, error) {
	graph, err := rdf.GraphIRI(s.config.Namespace, t.GraphName)
	if err != nil {
		return store.Quad{}, fmt.Errorf("graph name: %w", err)
	}

	// Graph-scoped prefixes shadow global ones during expansion.
	resolver := s.config.Prefixes.Resolver(graph.Value)

	subject, err := rdf.ResolveIdentifier(t.Subject, resolver)
	if err != nil {
		return store.Quad{}, fmt.Errorf("subject: %w", err)
	}
	predicate, err := rdf.ResolveIdentifier(t.Predicate, resolver)
	if err != nil {
		return store.Quad{}, fmt.Errorf("predicate: %w", err)
	}

	return store.Quad{
		Subject:   subject,
		Predicate: predicate,
		Object:    rdf.ResolveObject(t.Object, resolver),
		Graph:     graph,
	}, nil
}

func summarizeGraphs(quads []store.Quad) []GraphSummary {
	counts := make(map[string]int)
	for _, q := range quads {
		counts[rdf.GraphDisplay(q.Graph)]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]GraphSummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, GraphSummary{Graph: name, Count: counts[name]})
	}
	return summaries
}
