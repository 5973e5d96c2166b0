package config

import "github.com/papercomputeco/trellis/pkg/rdf"

const (
	defaultAPIListen = ":8081"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Namespace: NamespaceConfig{
			Base: rdf.DefaultNamespace,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
	}
}
