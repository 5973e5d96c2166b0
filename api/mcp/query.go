package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/sparql"
	"github.com/papercomputeco/trellis/pkg/store"
)

var (
	sparqlQueryToolName    = "rdf_sparql_query"
	sparqlQueryDescription = "Run a read-only SPARQL query (SELECT, ASK, CONSTRUCT, DESCRIBE) against the knowledge graph. Modification forms such as INSERT and DELETE are rejected."
)

// SparqlQueryInput represents the input arguments for the query tool.
type SparqlQueryInput struct {
	Query string `json:"query" jsonschema:"the SPARQL query text"`
}

// SparqlQueryOutput represents the output of the query tool. Kind selects
// which of the remaining fields is populated.
type SparqlQueryOutput struct {
	Kind     string              `json:"kind"`
	Boolean  *bool               `json:"boolean,omitempty"`
	Bindings []map[string]string `json:"bindings,omitempty"`
	Triples  []string            `json:"triples,omitempty"`
}

// handleSparqlQuery guards the query text, executes it against a read
// handle, and renders the result for the query form.
func (s *Server) handleSparqlQuery(ctx context.Context, req *mcp.CallToolRequest, input SparqlQueryInput) (*mcp.CallToolResult, SparqlQueryOutput, error) {
	logger := s.config.Logger

	if strings.TrimSpace(input.Query) == "" {
		return errorResult("no query provided"), SparqlQueryOutput{}, nil
	}

	if err := sparql.EnsureReadOnly(input.Query); err != nil {
		logger.Warn("rejected SPARQL query", zap.Error(err))
		return errorResult(err.Error()), SparqlQueryOutput{}, nil
	}

	var result *store.QueryResult
	err := s.config.Manager.View(ctx, func(engine store.Engine) error {
		var err error
		result, err = engine.Query(ctx, input.Query)
		return err
	})
	if err != nil {
		logger.Error("SPARQL query failed", zap.Error(err))
		return errorResult(fmt.Sprintf("query failed: %v", err)), SparqlQueryOutput{}, nil
	}

	output, text, err := renderQueryResult(result)
	if err != nil {
		logger.Error("failed to render query result", zap.Error(err))
		return errorResult(fmt.Sprintf("failed to serialize results: %v", err)), SparqlQueryOutput{}, nil
	}

	logger.Debug("MCP SPARQL query", zap.String("kind", output.Kind))

	return textResult(text), output, nil
}

// renderQueryResult shapes an engine result per query form: SELECT as a
// JSON array of binding objects, ASK as a bare boolean, CONSTRUCT and
// DESCRIBE as N-Triples lines.
func renderQueryResult(result *store.QueryResult) (SparqlQueryOutput, string, error) {
	switch result.Kind {
	case store.QueryBoolean:
		value := result.Boolean
		return SparqlQueryOutput{Kind: "ask", Boolean: &value}, strconv.FormatBool(value), nil

	case store.QueryTriples:
		lines := make([]string, len(result.Triples))
		for i, t := range result.Triples {
			lines[i] = rdf.FormatNQuad(t.Subject, t.Predicate, t.Object, rdf.Term{})
		}
		return SparqlQueryOutput{Kind: "triples", Triples: lines}, strings.Join(lines, "\n"), nil

	default:
		bindings := make([]map[string]string, len(result.Solutions))
		for i, solution := range result.Solutions {
			row := make(map[string]string, len(solution))
			for name, term := range solution {
				row[name] = term.String()
			}
			bindings[i] = row
		}

		jsonBytes, err := json.Marshal(bindings)
		if err != nil {
			return SparqlQueryOutput{}, "", err
		}
		return SparqlQueryOutput{Kind: "select", Bindings: bindings}, string(jsonBytes), nil
	}
}
