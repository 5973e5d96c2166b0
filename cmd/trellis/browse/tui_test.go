package browsecmder

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/trellis/pkg/logger"
	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
	testutils "github.com/papercomputeco/trellis/pkg/utils/test"
)

func seededManager(quads []store.Quad) *store.Manager {
	opener := testutils.NewFakeOpener()
	manager, err := store.NewManager(store.ManagerConfig{
		Open:   opener.Open,
		Logger: logger.Nop(),
	})
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	err = manager.Update(context.Background(), func(engine store.Engine) error {
		return engine.AddQuads(context.Background(), quads)
	})
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	return manager
}

var _ = Describe("Browse TUI helpers", func() {
	Describe("summarizeGraphs", func() {
		It("groups quads by graph with the default graph first", func() {
			quads := []store.Quad{
				{Subject: rdf.IRI("http://example.org/a"), Predicate: rdf.IRI("http://example.org/p"), Object: rdf.Literal("1"), Graph: rdf.IRI("http://trellis.local/zebra")},
				{Subject: rdf.IRI("http://example.org/b"), Predicate: rdf.IRI("http://example.org/p"), Object: rdf.Literal("2")},
				{Subject: rdf.IRI("http://example.org/c"), Predicate: rdf.IRI("http://example.org/p"), Object: rdf.Literal("3"), Graph: rdf.IRI("http://trellis.local/facts")},
				{Subject: rdf.IRI("http://example.org/d"), Predicate: rdf.IRI("http://example.org/p"), Object: rdf.Literal("4"), Graph: rdf.IRI("http://trellis.local/facts")},
			}

			rows := summarizeGraphs(quads)
			Expect(rows).To(HaveLen(3))
			Expect(rows[0].display).To(Equal("default graph"))
			Expect(rows[0].count).To(Equal(1))
			Expect(rows[1].display).To(Equal("<http://trellis.local/facts>"))
			Expect(rows[1].count).To(Equal(2))
			Expect(rows[2].display).To(Equal("<http://trellis.local/zebra>"))
			Expect(rows[2].count).To(Equal(1))
		})

		It("returns no rows for an empty store", func() {
			Expect(summarizeGraphs(nil)).To(BeEmpty())
		})
	})

	Describe("loadGraphRows", func() {
		It("reads graph rows through the manager", func() {
			manager := seededManager([]store.Quad{
				{Subject: rdf.IRI("http://example.org/a"), Predicate: rdf.IRI("http://example.org/p"), Object: rdf.Literal("1"), Graph: rdf.IRI("http://trellis.local/facts")},
			})
			defer manager.Close()

			rows, err := loadGraphRows(context.Background(), manager)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].display).To(Equal("<http://trellis.local/facts>"))
		})
	})

	Describe("loadQuads", func() {
		It("restricts to the row's graph and sorts deterministically", func() {
			manager := seededManager([]store.Quad{
				{Subject: rdf.IRI("http://example.org/b"), Predicate: rdf.IRI("http://example.org/p"), Object: rdf.Literal("2"), Graph: rdf.IRI("http://trellis.local/facts")},
				{Subject: rdf.IRI("http://example.org/a"), Predicate: rdf.IRI("http://example.org/p"), Object: rdf.Literal("1"), Graph: rdf.IRI("http://trellis.local/facts")},
				{Subject: rdf.IRI("http://example.org/x"), Predicate: rdf.IRI("http://example.org/p"), Object: rdf.Literal("9")},
			})
			defer manager.Close()

			row := graphRow{display: "<http://trellis.local/facts>", graph: rdf.IRI("http://trellis.local/facts")}
			quads, err := loadQuads(context.Background(), manager, row)
			Expect(err).NotTo(HaveOccurred())
			Expect(quads).To(HaveLen(2))
			Expect(quads[0].Subject.Value).To(Equal("http://example.org/a"))
			Expect(quads[1].Subject.Value).To(Equal("http://example.org/b"))
		})

		It("selects only the default graph for a zero graph term", func() {
			manager := seededManager([]store.Quad{
				{Subject: rdf.IRI("http://example.org/a"), Predicate: rdf.IRI("http://example.org/p"), Object: rdf.Literal("1"), Graph: rdf.IRI("http://trellis.local/facts")},
				{Subject: rdf.IRI("http://example.org/x"), Predicate: rdf.IRI("http://example.org/p"), Object: rdf.Literal("9")},
			})
			defer manager.Close()

			quads, err := loadQuads(context.Background(), manager, graphRow{display: "default graph"})
			Expect(err).NotTo(HaveOccurred())
			Expect(quads).To(HaveLen(1))
			Expect(quads[0].Subject.Value).To(Equal("http://example.org/x"))
		})
	})

	Describe("cursor movement", func() {
		It("clamps within the graph list", func() {
			model := newBrowseModel(nil, []graphRow{{display: "a"}, {display: "b"}})

			next, _ := model.moveCursor(1)
			m := next.(browseModel)
			Expect(m.cursor).To(Equal(1))

			next, _ = m.moveCursor(1)
			m = next.(browseModel)
			Expect(m.cursor).To(Equal(1))

			next, _ = m.moveCursor(-5)
			m = next.(browseModel)
			Expect(m.cursor).To(Equal(0))
		})
	})

	Describe("clamp", func() {
		It("bounds values to [0, upper]", func() {
			Expect(clamp(-1, 5)).To(Equal(0))
			Expect(clamp(3, 5)).To(Equal(3))
			Expect(clamp(9, 5)).To(Equal(5))
		})
	})

	Describe("visibleRange", func() {
		It("windows around the cursor", func() {
			start, end := visibleRange(10, 5, 4)
			Expect(end - start).To(Equal(4))
			Expect(start).To(BeNumerically("<=", 5))
			Expect(end).To(BeNumerically(">", 5))
		})

		It("returns the whole list when it fits", func() {
			start, end := visibleRange(3, 0, 10)
			Expect(start).To(Equal(0))
			Expect(end).To(Equal(3))
		})
	})

	Describe("truncateText", func() {
		It("shortens long values with an ellipsis", func() {
			Expect(truncateText("http://example.org/very/long/iri", 10)).To(Equal("http://..."))
			Expect(truncateText("short", 10)).To(Equal("short"))
		})
	})
})
