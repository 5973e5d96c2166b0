// Package trigo adapts the trigo embedded triple store to the store.Engine
// interface. All contact with the engine's types stays in this package;
// the rest of trellis deals in wire-format terms.
package trigo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	trdf "github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/sparql"
	tstore "github.com/aleksaelezovic/trigo/pkg/store"

	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
)

// Store wraps one trigo handle. A handle against a file-backed store holds
// the process lock until Close.
type Store struct {
	ts *tstore.TripleStore
}

var _ store.Engine = (*Store)(nil)

// Open opens an engine handle; it is the store.OpenFunc for trigo. An
// empty path opens an in-memory store. Read-only opens of a missing path
// return store.ErrNotExist; lock contention maps to store.ErrLocked.
func Open(path string, readOnly bool) (store.Engine, error) {
	if path == "" {
		return &Store{ts: tstore.New(tstore.NewMemoryStorage())}, nil
	}

	if readOnly {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, store.ErrNotExist
			}
			return nil, fmt.Errorf("checking store path: %w", err)
		}
	}

	backend, err := tstore.NewBoltStorage(path, readOnly)
	if err != nil {
		if isLockError(err) {
			return nil, store.ErrLocked
		}
		return nil, fmt.Errorf("opening store at %s: %w", path, err)
	}

	return &Store{ts: tstore.New(backend)}, nil
}

// AddQuads inserts the batch inside a single engine transaction.
func (s *Store) AddQuads(ctx context.Context, quads []store.Quad) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	batch := make([]trdf.Quad, len(quads))
	for i, q := range quads {
		batch[i] = toEngineQuad(q)
	}

	if err := s.ts.InsertQuads(batch); err != nil {
		if isLockError(err) {
			return store.ErrLocked
		}
		return fmt.Errorf("inserting quads: %w", err)
	}
	return nil
}

// QuadsForPattern matches quads; nil pattern positions are wildcards.
func (s *Store) QuadsForPattern(ctx context.Context, p store.Pattern) ([]store.Quad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found, err := s.ts.FindQuads(
		optionalTerm(p.Subject),
		optionalTerm(p.Predicate),
		optionalTerm(p.Object),
		optionalGraph(p.Graph),
	)
	if err != nil {
		return nil, fmt.Errorf("matching quads: %w", err)
	}

	quads := make([]store.Quad, 0, len(found))
	for _, q := range found {
		quads = append(quads, fromEngineQuad(q))
	}
	return quads, nil
}

// Query hands the query text to the engine's SPARQL executor and folds its
// three result shapes into store.QueryResult.
func (s *Store) Query(ctx context.Context, query string) (*store.QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := s.ts.Query(query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}

	switch r := res.(type) {
	case sparql.QueryBoolean:
		return &store.QueryResult{Kind: store.QueryBoolean, Boolean: bool(r)}, nil

	case *sparql.QuerySolutions:
		out := &store.QueryResult{
			Kind:      store.QuerySolutions,
			Variables: r.Variables(),
		}
		for _, sol := range r.Solutions() {
			row := make(store.Solution, len(sol))
			for name, term := range sol {
				row[name] = fromEngineTerm(term)
			}
			out.Solutions = append(out.Solutions, row)
		}
		return out, nil

	case *sparql.QueryTriples:
		out := &store.QueryResult{Kind: store.QueryTriples}
		for _, t := range r.Triples() {
			out.Triples = append(out.Triples, store.Quad{
				Subject:   fromEngineTerm(t.Subject),
				Predicate: fromEngineTerm(t.Predicate),
				Object:    fromEngineTerm(t.Object),
			})
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unexpected query result type %T", res)
	}
}

// Close releases the handle and, for file-backed stores, the file lock.
func (s *Store) Close() error {
	return s.ts.Close()
}

func toEngineQuad(q store.Quad) trdf.Quad {
	return trdf.Quad{
		Subject:   toEngineTerm(q.Subject),
		Predicate: toEngineTerm(q.Predicate),
		Object:    toEngineTerm(q.Object),
		Graph:     graphTerm(q.Graph),
	}
}

func fromEngineQuad(q trdf.Quad) store.Quad {
	out := store.Quad{
		Subject:   fromEngineTerm(q.Subject),
		Predicate: fromEngineTerm(q.Predicate),
		Object:    fromEngineTerm(q.Object),
	}
	if _, isDefault := q.Graph.(trdf.DefaultGraph); !isDefault && q.Graph != nil {
		out.Graph = fromEngineTerm(q.Graph)
	}
	return out
}

func toEngineTerm(t rdf.Term) trdf.Term {
	switch t.Kind {
	case rdf.KindLiteral:
		return trdf.NewLiteral(t.Value)
	case rdf.KindBlank:
		return trdf.NewBlankNode(t.Value)
	default:
		return trdf.NewIRI(t.Value)
	}
}

func fromEngineTerm(t trdf.Term) rdf.Term {
	switch v := t.(type) {
	case trdf.IRI:
		return rdf.IRI(v.Value)
	case trdf.Literal:
		return rdf.Literal(v.Value)
	case trdf.BlankNode:
		return rdf.Blank(v.ID)
	default:
		return rdf.Literal(t.String())
	}
}

// optionalTerm maps a pattern position to the engine's wildcard (nil).
func optionalTerm(t *rdf.Term) trdf.Term {
	if t == nil {
		return nil
	}
	return toEngineTerm(*t)
}

// optionalGraph distinguishes "any graph" (nil) from "default graph only"
// (pointer to the zero term).
func optionalGraph(t *rdf.Term) trdf.Term {
	if t == nil {
		return nil
	}
	return graphTerm(*t)
}

func graphTerm(t rdf.Term) trdf.Term {
	if t.IsZero() {
		return trdf.DefaultGraph{}
	}
	return toEngineTerm(t)
}

// isLockError detects the engine's file-lock failure, which surfaces as a
// bolt open timeout when another process holds the store.
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "locked")
}
