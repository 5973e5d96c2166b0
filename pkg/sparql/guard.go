// Package sparql guards the query tool: it rejects SPARQL update forms
// before they reach the engine. The engine's query/update API split is the
// real safety boundary; this guard exists to fail fast with a useful error
// instead of surfacing an engine parse failure.
package sparql

import (
	"fmt"
	"strings"
)

// forbiddenKeywords are the SPARQL 1.1 Update operations. Matching is
// case-insensitive and word-bounded, and skips comments, string literals,
// IRI references, variables, and prefixed-name local parts, so keywords
// embedded in data or mentioned in comments never trip the guard.
var forbiddenKeywords = map[string]struct{}{
	"INSERT": {},
	"DELETE": {},
	"DROP":   {},
	"CLEAR":  {},
	"CREATE": {},
	"LOAD":   {},
	"COPY":   {},
	"MOVE":   {},
	"ADD":    {},
}

// ForbiddenKeywordError reports an update keyword found in query position.
type ForbiddenKeywordError struct {
	Keyword string
}

func (e *ForbiddenKeywordError) Error() string {
	return fmt.Sprintf("modification queries are not allowed: %s operations are forbidden", e.Keyword)
}

// EnsureReadOnly scans query and returns a *ForbiddenKeywordError when an
// update operation appears outside comments, strings, IRIs, variables, and
// local names. It does not validate the query otherwise; syntax errors are
// the engine's to report.
func EnsureReadOnly(query string) error {
	s := []byte(query)
	i := 0
	prevColon := false

	for i < len(s) {
		c := s[i]

		switch {
		case c == '#':
			i = skipLineComment(s, i)
			prevColon = false

		case c == '<':
			i = skipIRIRef(s, i)
			prevColon = false

		case c == '"' || c == '\'':
			i = skipString(s, i)
			prevColon = false

		case c == '?' || c == '$':
			i = skipWord(s, i+1)
			prevColon = false

		case isWordByte(c):
			start := i
			i = skipWord(s, i)
			if !prevColon {
				word := strings.ToUpper(string(s[start:i]))
				if _, bad := forbiddenKeywords[word]; bad {
					return &ForbiddenKeywordError{Keyword: word}
				}
			}
			prevColon = false

		default:
			prevColon = c == ':'
			i++
		}
	}

	return nil
}

func skipLineComment(s []byte, i int) int {
	for i < len(s) && s[i] != '\n' {
		i++
	}
	return i
}

func skipIRIRef(s []byte, i int) int {
	i++ // consume '<'
	for i < len(s) && s[i] != '>' && s[i] != '\n' {
		i++
	}
	if i < len(s) && s[i] == '>' {
		i++
	}
	return i
}

// skipString consumes short ("x", 'x') and long ("""x""", '''x''') string
// forms, honoring backslash escapes.
func skipString(s []byte, i int) int {
	quote := s[i]

	if i+2 < len(s) && s[i+1] == quote && s[i+2] == quote {
		// Long form: scan for the closing triple.
		i += 3
		for i < len(s) {
			if s[i] == '\\' {
				i += 2
				continue
			}
			if s[i] == quote && i+2 < len(s) && s[i+1] == quote && s[i+2] == quote {
				return i + 3
			}
			i++
		}
		return i
	}

	i++
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		case '\n':
			return i
		default:
			i++
		}
	}
	return i
}

func skipWord(s []byte, i int) int {
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	return i
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
