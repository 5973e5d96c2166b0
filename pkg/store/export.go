package store

import (
	"context"
	"sort"
	"strings"

	"github.com/papercomputeco/trellis/pkg/rdf"
)

// ExportNQuads serializes matching quads as N-Quads. A nil graph exports
// the whole store; a non-nil graph restricts to that graph (the zero term
// selects the default graph). Lines are sorted so exports are stable
// across engine iteration orders. An empty store yields an empty string.
func ExportNQuads(ctx context.Context, engine Engine, graph *rdf.Term) (string, error) {
	quads, err := engine.QuadsForPattern(ctx, Pattern{Graph: graph})
	if err != nil {
		return "", err
	}
	if len(quads) == 0 {
		return "", nil
	}

	lines := make([]string, len(quads))
	for i, q := range quads {
		lines[i] = rdf.FormatNQuad(q.Subject, q.Predicate, q.Object, q.Graph)
	}
	sort.Strings(lines)

	return strings.Join(lines, "\n") + "\n", nil
}

// Stats summarizes store contents for the HTTP surface.
type Stats struct {
	QuadCount    int      `json:"quad_count"`
	DefaultQuads int      `json:"default_graph_quads"`
	GraphCount   int      `json:"graph_count"`
	Graphs       []string `json:"graphs"`
}

// CollectStats counts quads and named graphs.
func CollectStats(ctx context.Context, engine Engine) (*Stats, error) {
	quads, err := engine.QuadsForPattern(ctx, Pattern{})
	if err != nil {
		return nil, err
	}

	graphs := make(map[string]struct{})
	stats := &Stats{QuadCount: len(quads)}
	for _, q := range quads {
		if q.Graph.IsZero() {
			stats.DefaultQuads++
			continue
		}
		graphs[q.Graph.Value] = struct{}{}
	}

	stats.Graphs = make([]string, 0, len(graphs))
	for g := range graphs {
		stats.Graphs = append(stats.Graphs, g)
	}
	sort.Strings(stats.Graphs)
	stats.GraphCount = len(stats.Graphs)

	return stats, nil
}
