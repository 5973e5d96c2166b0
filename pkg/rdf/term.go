// Package rdf holds the wire-format model trellis uses to talk about RDF
// terms: validation of identifiers, CURIE expansion, graph naming, and the
// string renderings exposed to MCP clients and N-Quads export.
//
// The storage engine has its own term types; this package is the boundary
// translation between those and the plain strings of the tool protocol.
package rdf

import "strings"

// TermKind discriminates the three node shapes that cross the wire.
type TermKind int

const (
	// KindIRI is a named node, rendered as <value>.
	KindIRI TermKind = iota

	// KindLiteral is a plain literal, rendered as "value".
	KindLiteral

	// KindBlank is a blank node, rendered as _:id.
	KindBlank
)

// Term is a single RDF term in wire form. The zero Term is "no term", used
// for the default graph and for wildcard pattern positions.
type Term struct {
	Kind  TermKind
	Value string
}

// IRI returns a named-node term.
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// Literal returns a plain-literal term.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// Blank returns a blank-node term with the given label.
func Blank(id string) Term {
	return Term{Kind: KindBlank, Value: id}
}

// IsZero reports whether t is the absent term.
func (t Term) IsZero() bool {
	return t == Term{}
}

// String renders the term the way tool results show it: IRIs in angle
// brackets, literals in double quotes without escaping, blank nodes with
// the _: sigil.
func (t Term) String() string {
	switch t.Kind {
	case KindLiteral:
		return `"` + t.Value + `"`
	case KindBlank:
		return "_:" + t.Value
	default:
		return "<" + t.Value + ">"
	}
}

// NQuads renders the term as an N-Quads token, escaping literal values per
// the W3C grammar.
func (t Term) NQuads() string {
	switch t.Kind {
	case KindLiteral:
		return `"` + EscapeLiteral(t.Value) + `"`
	case KindBlank:
		return "_:" + t.Value
	default:
		return "<" + t.Value + ">"
	}
}

// EscapeLiteral escapes a literal value for N-Quads serialization.
func EscapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatNQuad renders one statement as an N-Quads line, omitting the graph
// token for the default graph.
func FormatNQuad(subject, predicate, object, graph Term) string {
	var b strings.Builder
	b.WriteString(subject.NQuads())
	b.WriteByte(' ')
	b.WriteString(predicate.NQuads())
	b.WriteByte(' ')
	b.WriteString(object.NQuads())
	if !graph.IsZero() {
		b.WriteByte(' ')
		b.WriteString(graph.NQuads())
	}
	b.WriteString(" .")
	return b.String()
}
