// Package store defines the quad-store surface trellis works against and
// the handle lifecycle around it. The actual engine (storage, pattern
// matching, SPARQL) lives behind the Engine interface; the trigo subpackage
// provides the real implementation.
package store

import (
	"context"
	"errors"

	"github.com/papercomputeco/trellis/pkg/rdf"
)

// Quad is one statement. A zero Graph term means the default graph.
type Quad struct {
	Subject   rdf.Term
	Predicate rdf.Term
	Object    rdf.Term
	Graph     rdf.Term
}

// Pattern is a quad template for matching. Nil positions are wildcards. A
// non-nil Graph pointing at the zero term matches only the default graph.
type Pattern struct {
	Subject   *rdf.Term
	Predicate *rdf.Term
	Object    *rdf.Term
	Graph     *rdf.Term
}

// Matches reports whether q fits the pattern. Engines may match natively;
// this is the reference semantics used by fakes and tests.
func (p Pattern) Matches(q Quad) bool {
	if p.Subject != nil && *p.Subject != q.Subject {
		return false
	}
	if p.Predicate != nil && *p.Predicate != q.Predicate {
		return false
	}
	if p.Object != nil && *p.Object != q.Object {
		return false
	}
	if p.Graph != nil && *p.Graph != q.Graph {
		return false
	}
	return true
}

// QueryKind discriminates the three SPARQL result shapes.
type QueryKind int

const (
	// QuerySolutions is a SELECT result: variable bindings.
	QuerySolutions QueryKind = iota

	// QueryBoolean is an ASK result.
	QueryBoolean

	// QueryTriples is a CONSTRUCT or DESCRIBE result.
	QueryTriples
)

// Solution is one SELECT row.
type Solution map[string]rdf.Term

// QueryResult carries any SPARQL result; Kind selects which fields are
// meaningful.
type QueryResult struct {
	Kind      QueryKind
	Boolean   bool
	Variables []string
	Solutions []Solution
	Triples   []Quad
}

// Engine is the quad-store contract the rest of trellis depends on.
// Implementations own storage, indexing, and SPARQL execution.
type Engine interface {
	// AddQuads inserts quads in one batch. Callers validate first; a batch
	// either fully applies or returns an error without partial state.
	AddQuads(ctx context.Context, quads []Quad) error

	// QuadsForPattern returns the quads matching p.
	QuadsForPattern(ctx context.Context, p Pattern) ([]Quad, error)

	// Query executes a SPARQL query. The read-only guard runs before this.
	Query(ctx context.Context, query string) (*QueryResult, error)

	// Close releases the handle. For file-backed engines this drops the
	// process lock on the store file.
	Close() error
}

var (
	// ErrLocked signals that another process holds the store file lock.
	// The manager retries writes on this.
	ErrLocked = errors.New("store file is locked by another process")

	// ErrNotExist signals a persistent store path with no store behind it.
	ErrNotExist = errors.New("store does not exist")
)
