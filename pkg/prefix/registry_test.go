package prefix_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/trellis/pkg/prefix"
)

var _ = Describe("Registry", func() {
	var reg *prefix.Registry

	const graph = "http://trellis.local/test-graph"

	BeforeEach(func() {
		reg = prefix.NewRegistry()
	})

	Describe("standard namespaces", func() {
		It("pre-defines them on a fresh registry", func() {
			Expect(reg.Global()).To(Equal(map[string]string{
				"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
				"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
				"foaf":   "http://xmlns.com/foaf/0.1/",
				"schema": "http://schema.org/",
			}))
		})

		It("lets user definitions shadow them", func() {
			reg.Define("", "schema", "https://schema.example.org/")

			Expect(reg.Global()).To(HaveKeyWithValue("schema", "https://schema.example.org/"))
		})

		It("restores them on Clear", func() {
			Expect(reg.Remove("", "rdf")).To(BeTrue())
			reg.Define("", "custom", "http://example.org/custom/")

			reg.Clear()

			Expect(reg.Global()).To(HaveKeyWithValue("rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#"))
			Expect(reg.Global()).NotTo(HaveKey("custom"))
		})
	})

	Describe("Define and Global", func() {
		It("stores global prefixes", func() {
			reg.Define("", "dcterms", "http://purl.org/dc/terms/")

			Expect(reg.Global()).To(HaveKeyWithValue("dcterms", "http://purl.org/dc/terms/"))
		})

		It("overwrites an existing mapping", func() {
			reg.Define("", "ex", "http://example.org/v1/")
			reg.Define("", "ex", "http://example.org/v2/")

			Expect(reg.Global()).To(HaveKeyWithValue("ex", "http://example.org/v2/"))
		})

		It("returns a copy, not the live table", func() {
			reg.Define("", "dcterms", "http://purl.org/dc/terms/")
			table := reg.Global()
			table["dcterms"] = "mutated"

			Expect(reg.Global()).To(HaveKeyWithValue("dcterms", "http://purl.org/dc/terms/"))
		})
	})

	Describe("graph-scoped prefixes", func() {
		It("keeps graph tables separate from the global table", func() {
			reg.Define(graph, "rel", "http://example.org/relations/")

			Expect(reg.Global()).NotTo(HaveKey("rel"))
			Expect(reg.ForGraph(graph)).To(HaveKeyWithValue("rel", "http://example.org/relations/"))
		})

		It("overlays graph entries on top of global ones", func() {
			reg.Define("", "ex", "http://example.org/global/")
			reg.Define(graph, "ex", "http://example.org/scoped/")

			Expect(reg.ForGraph(graph)).To(HaveKeyWithValue("ex", "http://example.org/scoped/"))
			Expect(reg.ForGraph("http://trellis.local/other")).
				To(HaveKeyWithValue("ex", "http://example.org/global/"))
		})

		It("lists graphs carrying scoped prefixes", func() {
			reg.Define(graph, "a", "http://example.org/a/")
			reg.Define("http://trellis.local/zz", "b", "http://example.org/b/")

			Expect(reg.Graphs()).To(Equal([]string{graph, "http://trellis.local/zz"}))
		})
	})

	Describe("Remove", func() {
		It("removes global prefixes", func() {
			reg.Define("", "gone", "http://example.org/gone/")

			Expect(reg.Remove("", "gone")).To(BeTrue())
			Expect(reg.Global()).NotTo(HaveKey("gone"))
		})

		It("removes graph-scoped prefixes without touching global ones", func() {
			reg.Define("", "ex", "http://example.org/")
			reg.Define(graph, "ex", "http://example.org/scoped/")

			Expect(reg.Remove(graph, "ex")).To(BeTrue())
			Expect(reg.ForGraph(graph)).To(HaveKeyWithValue("ex", "http://example.org/"))
		})

		It("reports absent prefixes", func() {
			Expect(reg.Remove("", "never")).To(BeFalse())
			Expect(reg.Remove(graph, "never")).To(BeFalse())
		})
	})

	Describe("Resolver", func() {
		It("prefers graph entries over global ones", func() {
			reg.Define("", "ex", "http://example.org/global/")
			reg.Define(graph, "ex", "http://example.org/scoped/")

			ns, ok := reg.Resolver(graph).Resolve("ex")
			Expect(ok).To(BeTrue())
			Expect(ns).To(Equal("http://example.org/scoped/"))

			ns, ok = reg.Resolver("").Resolve("ex")
			Expect(ok).To(BeTrue())
			Expect(ns).To(Equal("http://example.org/global/"))
		})

		It("reads live state, not a snapshot", func() {
			resolver := reg.Resolver("")
			_, ok := resolver.Resolve("late")
			Expect(ok).To(BeFalse())

			reg.Define("", "late", "http://example.org/late/")
			ns, ok := resolver.Resolve("late")
			Expect(ok).To(BeTrue())
			Expect(ns).To(Equal("http://example.org/late/"))
		})
	})

	It("handles concurrent definers and resolvers", func() {
		var wg sync.WaitGroup
		resolver := reg.Resolver(graph)

		for i := 0; i < 16; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				reg.Define(graph, "p", "http://example.org/p/")
			}()
			go func() {
				defer wg.Done()
				resolver.Resolve("p")
			}()
		}
		wg.Wait()

		Expect(reg.ForGraph(graph)).To(HaveKeyWithValue("p", "http://example.org/p/"))
	})
})
