package rdf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyValue is returned for empty or whitespace-only input where a
	// term is required.
	ErrEmptyValue = errors.New("value cannot be empty or whitespace-only")

	// ErrInvalidIRI is returned when a string cannot be used as an IRI.
	ErrInvalidIRI = errors.New("invalid IRI")
)

// IsEmptyOrWhitespace reports whether value is empty or all whitespace.
func IsEmptyOrWhitespace(value string) bool {
	return strings.TrimSpace(value) == ""
}

// IsIRI reports whether value is usable as an absolute IRI: a valid scheme,
// a non-empty remainder, at most one '#' (everything after the first is the
// fragment, which cannot contain another), and none of the characters the
// N-Triples grammar forbids inside IRIREF.
func IsIRI(value string) bool {
	colon := strings.IndexByte(value, ':')
	if colon <= 0 || colon == len(value)-1 {
		return false
	}
	if !validScheme(value[:colon]) {
		return false
	}
	if strings.Count(value, "#") > 1 {
		return false
	}
	for _, r := range value {
		if r <= 0x20 {
			return false
		}
		switch r {
		case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
			return false
		}
	}
	return true
}

// ValidateIRI returns ErrInvalidIRI when value cannot be used as an IRI.
func ValidateIRI(value string) error {
	if IsEmptyOrWhitespace(value) {
		return ErrEmptyValue
	}
	if !IsIRI(value) {
		return fmt.Errorf("%w: %q", ErrInvalidIRI, value)
	}
	return nil
}

// ValidatePrefix validates a namespace prefix and returns the trimmed form.
// A prefix must be non-empty after trimming, contain no colon (colons
// belong to CURIEs), and use only ASCII letters, digits, hyphens, and
// underscores.
func ValidatePrefix(prefix string) (string, error) {
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		return "", errors.New("prefix cannot be empty or whitespace-only")
	}
	if strings.ContainsRune(trimmed, ':') {
		return "", errors.New("prefix should not contain colons")
	}
	for _, r := range trimmed {
		if !prefixRune(r) {
			return "", errors.New("prefix must contain only ASCII letters, numbers, hyphens, and underscores")
		}
	}
	return trimmed, nil
}

// ValidateNamespaceURI validates the expansion target of a prefix. It must
// be an absolute http(s) URI ending in a separator so CURIE local parts
// concatenate into sensible identifiers.
func ValidateNamespaceURI(uri string) error {
	if IsEmptyOrWhitespace(uri) {
		return errors.New("namespace URI cannot be empty or whitespace-only")
	}
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		return errors.New("namespace URI must be an absolute http(s) URI")
	}
	if !IsIRI(uri) {
		return fmt.Errorf("%w: %q", ErrInvalidIRI, uri)
	}
	switch uri[len(uri)-1] {
	case '/', '#', ':':
		return nil
	}
	return errors.New("namespace URI must end with '/', '#', or ':'")
}

func validScheme(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !isASCIILetter(r) {
				return false
			}
			continue
		}
		if !isASCIILetter(r) && !isASCIIDigit(r) && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func prefixRune(r rune) bool {
	return isASCIILetter(r) || isASCIIDigit(r) || r == '_' || r == '-'
}
