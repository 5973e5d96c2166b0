// Package prefix keeps the namespace-prefix tables used for CURIE
// expansion: one global table and one table per named graph. The registry
// is process-local and advisory; it never touches the store.
package prefix

import (
	"sort"
	"sync"
)

// Registry is a concurrency-safe prefix table. Graph-scoped entries shadow
// global ones during resolution. The zero value is not usable; call
// NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	global map[string]string
	graphs map[string]map[string]string
}

// standardNamespaces are pre-defined on every fresh registry so common
// vocabularies expand without an rdf_define_prefix call.
var standardNamespaces = map[string]string{
	"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
	"foaf":   "http://xmlns.com/foaf/0.1/",
	"schema": "http://schema.org/",
}

func NewRegistry() *Registry {
	return &Registry{
		global: copyTable(standardNamespaces),
		graphs: make(map[string]map[string]string),
	}
}

// Define maps prefix to namespace. An empty graph IRI targets the global
// table; anything else targets that graph's table.
func (r *Registry) Define(graphIRI, prefix, namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if graphIRI == "" {
		r.global[prefix] = namespace
		return
	}

	table, ok := r.graphs[graphIRI]
	if !ok {
		table = make(map[string]string)
		r.graphs[graphIRI] = table
	}
	table[prefix] = namespace
}

// Remove deletes a prefix from the chosen table. It reports whether the
// prefix was present.
func (r *Registry) Remove(graphIRI, prefix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if graphIRI == "" {
		_, ok := r.global[prefix]
		delete(r.global, prefix)
		return ok
	}

	table, ok := r.graphs[graphIRI]
	if !ok {
		return false
	}
	_, present := table[prefix]
	delete(table, prefix)
	if len(table) == 0 {
		delete(r.graphs, graphIRI)
	}
	return present
}

// Global returns a copy of the global table.
func (r *Registry) Global() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyTable(r.global)
}

// ForGraph returns the effective table for a graph: the global table with
// the graph's own entries layered on top.
func (r *Registry) ForGraph(graphIRI string) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	merged := copyTable(r.global)
	for k, v := range r.graphs[graphIRI] {
		merged[k] = v
	}
	return merged
}

// Graphs lists the graph IRIs that carry scoped prefixes, sorted.
func (r *Registry) Graphs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.graphs))
	for g := range r.graphs {
		names = append(names, g)
	}
	sort.Strings(names)
	return names
}

// Clear resets every table to the fresh-registry state, standard
// namespaces included. Used between test runs.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.global = copyTable(standardNamespaces)
	r.graphs = make(map[string]map[string]string)
}

// Resolver returns a CURIE resolver scoped to graphIRI: graph entries win,
// global entries fill in. Pass the empty string for global-only
// resolution. The view reads live registry state.
func (r *Registry) Resolver(graphIRI string) *Resolver {
	return &Resolver{registry: r, graphIRI: graphIRI}
}

// Resolver is a read view over a Registry implementing rdf.Resolver.
type Resolver struct {
	registry *Registry
	graphIRI string
}

func (v *Resolver) Resolve(prefix string) (string, bool) {
	v.registry.mu.RLock()
	defer v.registry.mu.RUnlock()

	if v.graphIRI != "" {
		if table, ok := v.registry.graphs[v.graphIRI]; ok {
			if ns, ok := table[prefix]; ok {
				return ns, true
			}
		}
	}
	ns, ok := v.registry.global[prefix]
	return ns, ok
}

func copyTable(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
