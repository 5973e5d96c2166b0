package rdf

import (
	"errors"
	"strings"
)

// DefaultNamespace is the base IRI under which simple graph names live when
// no namespace is configured.
const DefaultNamespace = "http://trellis.local/"

// ErrBlankGraphName is returned for whitespace-only graph names, which are
// neither a usable name nor the default graph.
var ErrBlankGraphName = errors.New("graph name cannot be whitespace-only")

// GraphIRI converts a simple graph name into its namespaced IRI term.
// Empty name means the default graph and yields the zero term. Names may
// contain slashes (e.g. "conversation/chat-123"). A name that is already an
// absolute IRI is used as-is.
func GraphIRI(base, name string) (Term, error) {
	if name == "" {
		return Term{}, nil
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Term{}, ErrBlankGraphName
	}
	if IsIRI(trimmed) && strings.Contains(trimmed, "://") {
		return IRI(trimmed), nil
	}
	if base == "" {
		base = DefaultNamespace
	}
	iri := base + trimmed
	if err := ValidateIRI(iri); err != nil {
		return Term{}, err
	}
	return IRI(iri), nil
}

// GraphDisplay renders a graph term for tool results: the IRI in angle
// brackets, or the literal string "default graph" for the zero term.
func GraphDisplay(graph Term) string {
	if graph.IsZero() {
		return "default graph"
	}
	return graph.String()
}
