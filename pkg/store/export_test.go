package store_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
	testutils "github.com/papercomputeco/trellis/pkg/utils/test"
)

var _ = Describe("ExportNQuads", func() {
	var (
		engine *testutils.FakeEngine
		ctx    context.Context
	)

	BeforeEach(func() {
		engine = testutils.NewFakeEngine()
		ctx = context.Background()
	})

	It("returns an empty string for an empty store", func() {
		out, err := store.ExportNQuads(ctx, engine, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())
	})

	It("serializes quads sorted with a trailing newline", func() {
		Expect(engine.AddQuads(ctx, []store.Quad{
			{
				Subject:   rdf.IRI("http://example.org/b"),
				Predicate: rdf.IRI("http://example.org/p"),
				Object:    rdf.Literal("two"),
			},
			{
				Subject:   rdf.IRI("http://example.org/a"),
				Predicate: rdf.IRI("http://example.org/p"),
				Object:    rdf.Literal("one"),
				Graph:     rdf.IRI("http://trellis.local/facts"),
			},
		})).To(Succeed())

		out, err := store.ExportNQuads(ctx, engine, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(
			"<http://example.org/a> <http://example.org/p> \"one\" <http://trellis.local/facts> .\n" +
				"<http://example.org/b> <http://example.org/p> \"two\" .\n",
		))
	})

	It("restricts output to the requested graph", func() {
		facts := rdf.IRI("http://trellis.local/facts")
		Expect(engine.AddQuads(ctx, []store.Quad{
			{
				Subject:   rdf.IRI("http://example.org/a"),
				Predicate: rdf.IRI("http://example.org/p"),
				Object:    rdf.Literal("kept"),
				Graph:     facts,
			},
			{
				Subject:   rdf.IRI("http://example.org/b"),
				Predicate: rdf.IRI("http://example.org/p"),
				Object:    rdf.Literal("dropped"),
			},
		})).To(Succeed())

		out, err := store.ExportNQuads(ctx, engine, &facts)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("<http://example.org/a> <http://example.org/p> \"kept\" <http://trellis.local/facts> .\n"))
	})

	It("selects the default graph with a zero term", func() {
		Expect(engine.AddQuads(ctx, []store.Quad{
			{
				Subject:   rdf.IRI("http://example.org/a"),
				Predicate: rdf.IRI("http://example.org/p"),
				Object:    rdf.Literal("default"),
			},
			{
				Subject:   rdf.IRI("http://example.org/b"),
				Predicate: rdf.IRI("http://example.org/p"),
				Object:    rdf.Literal("named"),
				Graph:     rdf.IRI("http://trellis.local/facts"),
			},
		})).To(Succeed())

		var def rdf.Term
		out, err := store.ExportNQuads(ctx, engine, &def)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("<http://example.org/a> <http://example.org/p> \"default\" .\n"))
	})

	It("escapes literal values", func() {
		Expect(engine.AddQuads(ctx, []store.Quad{{
			Subject:   rdf.IRI("http://example.org/a"),
			Predicate: rdf.IRI("http://example.org/p"),
			Object:    rdf.Literal("line one\nline \"two\""),
		}})).To(Succeed())

		out, err := store.ExportNQuads(ctx, engine, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(`"line one\nline \"two\""`))
	})

	It("propagates engine errors", func() {
		engine.FindErr = context.DeadlineExceeded

		_, err := store.ExportNQuads(ctx, engine, nil)
		Expect(err).To(MatchError(context.DeadlineExceeded))
	})
})

var _ = Describe("CollectStats", func() {
	var (
		engine *testutils.FakeEngine
		ctx    context.Context
	)

	BeforeEach(func() {
		engine = testutils.NewFakeEngine()
		ctx = context.Background()
	})

	It("reports zeros for an empty store", func() {
		stats, err := store.CollectStats(ctx, engine)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.QuadCount).To(BeZero())
		Expect(stats.DefaultQuads).To(BeZero())
		Expect(stats.GraphCount).To(BeZero())
		Expect(stats.Graphs).To(BeEmpty())
	})

	It("counts quads per graph with sorted graph names", func() {
		Expect(engine.AddQuads(ctx, []store.Quad{
			{
				Subject:   rdf.IRI("http://example.org/a"),
				Predicate: rdf.IRI("http://example.org/p"),
				Object:    rdf.Literal("1"),
			},
			{
				Subject:   rdf.IRI("http://example.org/b"),
				Predicate: rdf.IRI("http://example.org/p"),
				Object:    rdf.Literal("2"),
				Graph:     rdf.IRI("http://trellis.local/zoo"),
			},
			{
				Subject:   rdf.IRI("http://example.org/c"),
				Predicate: rdf.IRI("http://example.org/p"),
				Object:    rdf.Literal("3"),
				Graph:     rdf.IRI("http://trellis.local/farm"),
			},
			{
				Subject:   rdf.IRI("http://example.org/d"),
				Predicate: rdf.IRI("http://example.org/p"),
				Object:    rdf.Literal("4"),
				Graph:     rdf.IRI("http://trellis.local/farm"),
			},
		})).To(Succeed())

		stats, err := store.CollectStats(ctx, engine)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.QuadCount).To(Equal(4))
		Expect(stats.DefaultQuads).To(Equal(1))
		Expect(stats.GraphCount).To(Equal(2))
		Expect(stats.Graphs).To(Equal([]string{
			"http://trellis.local/farm",
			"http://trellis.local/zoo",
		}))
	})
})
