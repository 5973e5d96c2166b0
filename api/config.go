// Package api provides an HTTP server for inspecting and exporting the
// quad store, with the MCP endpoint mounted alongside.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8081")
	ListenAddr string

	// Namespace is the base IRI simple graph names are appended to.
	Namespace string
}
