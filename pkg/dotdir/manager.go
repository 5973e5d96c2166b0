// Package dotdir manages the .trellis/ and ~/.trellis directories.
//
// The dot directory holds the persistent store file, the config.toml, and
// anything else trellis needs to keep between runs. A local ./.trellis/
// directory takes precedence over the home directory one, so projects can
// carry their own knowledge graph.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the trellis directory.
	dirName = ".trellis"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .trellis/ directory.
// Order of precedence is as follows:
//  1. Provided override
//  2. Local ./.trellis/ dir
//  3. Home ~/.trellis/ dir
//  4. If none found, attempt to create ~/.trellis/ dir
func (m *Manager) Target(overrideDir string) (string, error) {
	var dir string

	switch {
	case overrideDir != "":
		dir = overrideDir

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, dirName)

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating trellis directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

// StorePath returns the default location of the persistent store file inside
// the resolved dot directory. It does not create the file; opening the store
// is the engine's business.
func (m *Manager) StorePath(overrideDir string) (string, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "graph.db"), nil
}

// localDirExists checks whether a .trellis/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}
