package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	trellislogger "github.com/papercomputeco/trellis/pkg/logger"
	"github.com/papercomputeco/trellis/pkg/prefix"
	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
	testutils "github.com/papercomputeco/trellis/pkg/utils/test"
)

// newTestServer wires a server over a shared in-memory fake engine.
func newTestServer() (*Server, *testutils.FakeEngine) {
	opener := testutils.NewFakeOpener()
	manager, err := store.NewManager(store.ManagerConfig{
		Open:   opener.Open,
		Logger: trellislogger.Nop(),
	})
	Expect(err).NotTo(HaveOccurred())

	server, err := NewServer(Config{
		Manager:  manager,
		Prefixes: prefix.NewRegistry(),
		Logger:   trellislogger.Nop(),
	})
	Expect(err).NotTo(HaveOccurred())

	return server, opener.Backing
}

// resultText extracts the text block of a tool result.
func resultText(result *mcp.CallToolResult) string {
	Expect(result.Content).To(HaveLen(1))
	text, ok := result.Content[0].(*mcp.TextContent)
	Expect(ok).To(BeTrue())
	return text.Text
}

var _ = Describe("Add triples tool", func() {
	var (
		server *Server
		engine *testutils.FakeEngine
		ctx    context.Context
	)

	BeforeEach(func() {
		server, engine = newTestServer()
		ctx = context.Background()
	})

	It("inserts triples and reports a per-graph summary", func() {
		result, output, err := server.handleAddTriples(ctx, nil, AddTriplesInput{
			Triples: []TripleInput{
				{
					Subject:   "http://example.org/alice",
					Predicate: "http://example.org/knows",
					Object:    "http://example.org/bob",
				},
				{
					Subject:   "http://example.org/alice",
					Predicate: "http://example.org/age",
					Object:    "42",
					GraphName: "facts",
				},
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeFalse())

		Expect(output.Inserted).To(Equal(2))
		Expect(output.Graphs).To(Equal([]GraphSummary{
			{Graph: "<http://trellis.local/facts>", Count: 1},
			{Graph: "default graph", Count: 1},
		}))

		quads := engine.Quads()
		Expect(quads).To(HaveLen(2))
		Expect(quads[0].Subject).To(Equal(rdf.IRI("http://example.org/alice")))
		Expect(quads[0].Object).To(Equal(rdf.IRI("http://example.org/bob")))
		Expect(quads[0].Graph.IsZero()).To(BeTrue())
		Expect(quads[1].Object).To(Equal(rdf.Literal("42")))
		Expect(quads[1].Graph).To(Equal(rdf.IRI("http://trellis.local/facts")))
	})

	It("expands CURIEs through the global prefix table", func() {
		server.config.Prefixes.Define("", "foaf", "http://xmlns.com/foaf/0.1/")

		result, _, err := server.handleAddTriples(ctx, nil, AddTriplesInput{
			Triples: []TripleInput{{
				Subject:   "foaf:alice",
				Predicate: "foaf:name",
				Object:    "Alice",
			}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeFalse())

		quads := engine.Quads()
		Expect(quads).To(HaveLen(1))
		Expect(quads[0].Subject).To(Equal(rdf.IRI("http://xmlns.com/foaf/0.1/alice")))
		Expect(quads[0].Predicate).To(Equal(rdf.IRI("http://xmlns.com/foaf/0.1/name")))
		Expect(quads[0].Object).To(Equal(rdf.Literal("Alice")))
	})

	It("lets graph-scoped prefixes shadow global ones", func() {
		server.config.Prefixes.Define("", "ex", "http://global.example.org/")
		server.config.Prefixes.Define("http://trellis.local/facts", "ex", "http://scoped.example.org/")

		_, _, err := server.handleAddTriples(ctx, nil, AddTriplesInput{
			Triples: []TripleInput{{
				Subject:   "ex:thing",
				Predicate: "http://example.org/p",
				Object:    "v",
				GraphName: "facts",
			}},
		})
		Expect(err).NotTo(HaveOccurred())

		quads := engine.Quads()
		Expect(quads).To(HaveLen(1))
		Expect(quads[0].Subject).To(Equal(rdf.IRI("http://scoped.example.org/thing")))
	})

	It("rejects an empty batch", func() {
		result, _, err := server.handleAddTriples(ctx, nil, AddTriplesInput{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeTrue())
	})

	It("stores an unresolvable CURIE-shaped subject as the IRI it already is", func() {
		result, _, err := server.handleAddTriples(ctx, nil, AddTriplesInput{
			Triples: []TripleInput{{
				Subject:   "nope:alice",
				Predicate: "mailto:admin@example.org",
				Object:    "v",
			}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeFalse())

		quads := engine.Quads()
		Expect(quads).To(HaveLen(1))
		Expect(quads[0].Subject).To(Equal(rdf.IRI("nope:alice")))
		Expect(quads[0].Predicate).To(Equal(rdf.IRI("mailto:admin@example.org")))
	})

	It("rejects a subject that is neither a CURIE nor an IRI with the triple position", func() {
		result, _, err := server.handleAddTriples(ctx, nil, AddTriplesInput{
			Triples: []TripleInput{{
				Subject:   "not a uri",
				Predicate: "http://example.org/p",
				Object:    "v",
			}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeTrue())

		Expect(resultText(result)).To(ContainSubstring("triple 1: subject"))
	})

	It("inserts nothing when a later triple fails validation", func() {
		result, _, err := server.handleAddTriples(ctx, nil, AddTriplesInput{
			Triples: []TripleInput{
				{
					Subject:   "http://example.org/ok",
					Predicate: "http://example.org/p",
					Object:    "v",
				},
				{
					Subject:   "not a uri",
					Predicate: "http://example.org/p",
					Object:    "v",
				},
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeTrue())
		Expect(engine.Quads()).To(BeEmpty())
	})

	It("rejects a whitespace-only graph name", func() {
		result, _, err := server.handleAddTriples(ctx, nil, AddTriplesInput{
			Triples: []TripleInput{{
				Subject:   "http://example.org/s",
				Predicate: "http://example.org/p",
				Object:    "v",
				GraphName: "   ",
			}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeTrue())
	})

	It("surfaces engine failures as tool errors", func() {
		engine.AddErr = errors.New("disk full")

		result, _, err := server.handleAddTriples(ctx, nil, AddTriplesInput{
			Triples: []TripleInput{{
				Subject:   "http://example.org/s",
				Predicate: "http://example.org/p",
				Object:    "v",
			}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeTrue())
		Expect(engine.Quads()).To(BeEmpty())
	})
})
