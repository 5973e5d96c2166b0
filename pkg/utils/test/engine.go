// Package testutils holds fakes shared by the trellis test suites.
package testutils

import (
	"context"
	"sync"

	"github.com/papercomputeco/trellis/pkg/store"
)

// FakeEngine is an in-memory store.Engine with scriptable failures. It
// implements pattern matching with the reference Pattern.Matches semantics
// and answers SPARQL queries from a canned result.
type FakeEngine struct {
	mu    sync.Mutex
	quads []store.Quad

	// QueryResult is returned by Query when QueryErr is nil.
	QueryResult *store.QueryResult

	// LastQuery records the most recent query text.
	LastQuery string

	AddErr   error
	FindErr  error
	QueryErr error
	CloseErr error

	Closed bool
}

var _ store.Engine = (*FakeEngine)(nil)

func NewFakeEngine() *FakeEngine {
	return &FakeEngine{
		QueryResult: &store.QueryResult{Kind: store.QuerySolutions},
	}
}

func (f *FakeEngine) AddQuads(_ context.Context, quads []store.Quad) error {
	if f.AddErr != nil {
		return f.AddErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quads = append(f.quads, quads...)
	return nil
}

func (f *FakeEngine) QuadsForPattern(_ context.Context, p store.Pattern) ([]store.Quad, error) {
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []store.Quad
	for _, q := range f.quads {
		if p.Matches(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *FakeEngine) Query(_ context.Context, query string) (*store.QueryResult, error) {
	f.mu.Lock()
	f.LastQuery = query
	f.mu.Unlock()

	if f.QueryErr != nil {
		return nil, f.QueryErr
	}
	return f.QueryResult, nil
}

func (f *FakeEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return f.CloseErr
}

// Quads returns a snapshot of stored quads.
func (f *FakeEngine) Quads() []store.Quad {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.Quad, len(f.quads))
	copy(out, f.quads)
	return out
}

// Reset drops all quads.
func (f *FakeEngine) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quads = nil
}

// FakeOpener builds store.OpenFunc values for manager tests: it records
// every open, shares one backing engine across handles so per-operation
// opens see prior writes, and can fail the first N write opens with a
// scripted error to exercise retry paths.
type FakeOpener struct {
	mu sync.Mutex

	// Backing is the shared engine state behind every handle.
	Backing *FakeEngine

	// FailWrites makes the next N write opens return FailErr.
	FailWrites int
	FailErr    error

	// MissingUntilCreated makes read opens fail with store.ErrNotExist
	// until a write open has happened, mirroring a store file that does
	// not exist yet.
	MissingUntilCreated bool

	created    bool
	ReadOpens  int
	WriteOpens int
	Handles    []*FakeHandle
}

// FakeHandle wraps the shared backing engine and tracks its own Close.
type FakeHandle struct {
	*FakeEngine
	ReadOnly     bool
	HandleClosed bool
}

func (h *FakeHandle) Close() error {
	h.HandleClosed = true
	return nil
}

func NewFakeOpener() *FakeOpener {
	return &FakeOpener{Backing: NewFakeEngine()}
}

// Open is the store.OpenFunc.
func (o *FakeOpener) Open(_ string, readOnly bool) (store.Engine, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if readOnly {
		o.ReadOpens++
		if o.MissingUntilCreated && !o.created {
			return nil, store.ErrNotExist
		}
	} else {
		o.WriteOpens++
		if o.FailWrites > 0 {
			o.FailWrites--
			return nil, o.FailErr
		}
		o.created = true
	}

	h := &FakeHandle{FakeEngine: o.Backing, ReadOnly: readOnly}
	o.Handles = append(o.Handles, h)
	return h, nil
}
