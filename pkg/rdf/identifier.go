package rdf

import "fmt"

// ResolveIdentifier turns a subject or predicate string into an IRI term.
// CURIEs with a defined prefix expand first; anything else must already be
// a valid absolute IRI. Unresolvable CURIE-shaped strings still pass when
// they form a valid IRI on their own (e.g. mailto: or urn: identifiers).
func ResolveIdentifier(value string, r Resolver) (Term, error) {
	if IsEmptyOrWhitespace(value) {
		return Term{}, ErrEmptyValue
	}

	if expanded, ok := ExpandCURIE(value, r); ok {
		if err := ValidateIRI(expanded); err != nil {
			return Term{}, fmt.Errorf("CURIE %q expands to invalid IRI: %w", value, err)
		}
		return IRI(expanded), nil
	}

	if err := ValidateIRI(value); err != nil {
		return Term{}, err
	}
	return IRI(value), nil
}

// ResolveObject turns an object string into a term: an IRI when the string
// expands as a CURIE or parses as an absolute IRI, a plain literal
// otherwise. Objects never fail validation; the literal fallback always
// applies.
func ResolveObject(value string, r Resolver) Term {
	if expanded, ok := ExpandCURIE(value, r); ok && IsIRI(expanded) {
		return IRI(expanded)
	}
	if IsIRI(value) {
		return IRI(value)
	}
	return Literal(value)
}
