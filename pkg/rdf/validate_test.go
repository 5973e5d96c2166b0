package rdf_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/trellis/pkg/rdf"
)

var _ = Describe("Validation", func() {
	Describe("IsEmptyOrWhitespace", func() {
		It("detects empty and whitespace strings", func() {
			Expect(rdf.IsEmptyOrWhitespace("")).To(BeTrue())
			Expect(rdf.IsEmptyOrWhitespace("   ")).To(BeTrue())
			Expect(rdf.IsEmptyOrWhitespace("\t\n")).To(BeTrue())
			Expect(rdf.IsEmptyOrWhitespace("text")).To(BeFalse())
			Expect(rdf.IsEmptyOrWhitespace(" text ")).To(BeFalse())
		})
	})

	Describe("IsIRI", func() {
		It("accepts http(s) URIs", func() {
			Expect(rdf.IsIRI("http://example.org/test")).To(BeTrue())
			Expect(rdf.IsIRI("https://example.org/test")).To(BeTrue())
		})

		It("accepts non-http absolute identifiers", func() {
			Expect(rdf.IsIRI("urn:uuid:6e8bc430-9c3a-11d9-9669-0800200c9a66")).To(BeTrue())
			Expect(rdf.IsIRI("mailto:user@example.org")).To(BeTrue())
			Expect(rdf.IsIRI("ftp://files.example.org/data")).To(BeTrue())
		})

		It("rejects strings without a scheme", func() {
			Expect(rdf.IsIRI("plain text")).To(BeFalse())
			Expect(rdf.IsIRI("example.org/test")).To(BeFalse())
			Expect(rdf.IsIRI("")).To(BeFalse())
		})

		It("rejects whitespace and forbidden characters", func() {
			Expect(rdf.IsIRI("http://example.org/has space")).To(BeFalse())
			Expect(rdf.IsIRI("http://example.org/<bad>")).To(BeFalse())
			Expect(rdf.IsIRI("http://example.org/line\nbreak")).To(BeFalse())
		})

		It("rejects schemes starting with a digit", func() {
			Expect(rdf.IsIRI("12:30")).To(BeFalse())
		})

		It("allows a single fragment but rejects a second hash", func() {
			Expect(rdf.IsIRI("http://example.org/ns#name")).To(BeTrue())
			Expect(rdf.IsIRI("http://example.org/graph#with#hashes")).To(BeFalse())
		})
	})

	Describe("ValidatePrefix", func() {
		It("accepts identifier-style prefixes and trims whitespace", func() {
			Expect(rdf.ValidatePrefix("rdf")).To(Equal("rdf"))
			Expect(rdf.ValidatePrefix("my_prefix")).To(Equal("my_prefix"))
			Expect(rdf.ValidatePrefix("prefix-123")).To(Equal("prefix-123"))
			Expect(rdf.ValidatePrefix("  spaced  ")).To(Equal("spaced"))
		})

		It("rejects empty or whitespace-only prefixes", func() {
			_, err := rdf.ValidatePrefix("")
			Expect(err).To(HaveOccurred())
			_, err = rdf.ValidatePrefix("   ")
			Expect(err).To(HaveOccurred())
		})

		It("rejects colons", func() {
			_, err := rdf.ValidatePrefix("pre:fix")
			Expect(err).To(MatchError(ContainSubstring("colon")))
		})

		It("rejects non-ASCII and punctuation", func() {
			for _, bad := range []string{"pré", "pre fix", "pre.fix", "pre/fix"} {
				_, err := rdf.ValidatePrefix(bad)
				Expect(err).To(HaveOccurred(), "prefix %q should be rejected", bad)
			}
		})
	})

	Describe("ValidateNamespaceURI", func() {
		It("accepts http(s) URIs ending in a separator", func() {
			Expect(rdf.ValidateNamespaceURI("http://example.org/ns/")).To(Succeed())
			Expect(rdf.ValidateNamespaceURI("https://example.org/ns#")).To(Succeed())
			Expect(rdf.ValidateNamespaceURI("http://example.org/ns:")).To(Succeed())
		})

		It("rejects non-http schemes", func() {
			Expect(rdf.ValidateNamespaceURI("urn:example:")).NotTo(Succeed())
		})

		It("rejects URIs without a trailing separator", func() {
			Expect(rdf.ValidateNamespaceURI("http://example.org/ns")).NotTo(Succeed())
		})

		It("rejects empty input", func() {
			Expect(rdf.ValidateNamespaceURI("")).NotTo(Succeed())
			Expect(rdf.ValidateNamespaceURI("  ")).NotTo(Succeed())
		})
	})
})
