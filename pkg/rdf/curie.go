package rdf

import "strings"

// IsCURIE reports whether value matches the compact-URI shape
// prefix:localname. Full URIs (anything containing "://"), strings with
// more than one colon, and empty prefix or local parts do not qualify.
func IsCURIE(value string) bool {
	if strings.Contains(value, "://") {
		return false
	}

	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return false
	}

	prefix, local := parts[0], parts[1]
	if prefix == "" || local == "" {
		return false
	}

	for _, r := range prefix {
		if !prefixRune(r) {
			return false
		}
	}
	return true
}

// SplitCURIE splits a CURIE into its prefix and local part. The boolean is
// false when value is not a CURIE.
func SplitCURIE(value string) (prefix, local string, ok bool) {
	if !IsCURIE(value) {
		return "", "", false
	}
	prefix, local, _ = strings.Cut(value, ":")
	return prefix, local, true
}

// Resolver maps a namespace prefix to its expansion. Implemented by the
// prefix registry; kept as an interface here so the translation layer does
// not depend on registry internals.
type Resolver interface {
	Resolve(prefix string) (string, bool)
}

// ExpandCURIE expands value through r. The boolean is false when value is
// not a CURIE or its prefix is not defined; callers then treat value as a
// plain identifier or literal.
func ExpandCURIE(value string, r Resolver) (string, bool) {
	prefix, local, ok := SplitCURIE(value)
	if !ok || r == nil {
		return "", false
	}
	ns, ok := r.Resolve(prefix)
	if !ok {
		return "", false
	}
	return ns + local, true
}
