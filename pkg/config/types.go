package config

// Config represents the persistent trellis configuration stored as
// config.toml in the .trellis/ directory. The TOML layout uses sections
// for logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Storage   StorageConfig   `toml:"storage"`
	Namespace NamespaceConfig `toml:"namespace"`
	API       APIConfig       `toml:"api"`
}

// StorageConfig holds quad-store settings. An empty path means an
// in-memory store scoped to the process.
type StorageConfig struct {
	Path string `toml:"path,omitempty"`
}

// NamespaceConfig holds the base IRI simple graph names are namespaced
// under.
type NamespaceConfig struct {
	Base string `toml:"base,omitempty"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"storage.path": {
		get: func(c *Config) string { return c.Storage.Path },
		set: func(c *Config, v string) error { c.Storage.Path = v; return nil },
	},
	"namespace.base": {
		get: func(c *Config) string { return c.Namespace.Base },
		set: func(c *Config, v string) error { c.Namespace.Base = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
}
