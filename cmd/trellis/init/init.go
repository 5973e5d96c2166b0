// Package initcmder provides the init command for initializing a local
// .trellis directory in the current working directory.
package initcmder

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/trellis/pkg/config"
)

const (
	dirName = ".trellis"
)

const initLongDesc string = `Initialize a new .trellis/ directory in the current working directory.

Creates a local .trellis/ directory with a default config.toml. The local
directory takes precedence over the default ~/.trellis/ directory for storage
and configuration, so projects can carry their own knowledge graph.

If a config.toml already exists, init asks before overwriting it. When stdin
is not a terminal the existing config is kept.

Examples:
  trellis init`

const initShortDesc string = "Initialize a local .trellis/ directory"

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit()
		},
	}

	return cmd
}

func runInit() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating .trellis directory: %w", err)
	}

	configPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if !confirmOverwrite(configPath) {
			fmt.Printf("Already initialized: %s\n", dir)
			return nil
		}
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("resolving config target: %w", err)
	}

	if err := cfger.SaveConfig(config.NewDefaultConfig()); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	fmt.Printf("Initialized .trellis directory: %s\n", dir)
	return nil
}

// confirmOverwrite asks before clobbering an existing config.toml. When
// stdin is not a terminal there is nobody to ask, so the answer is no.
func confirmOverwrite(configPath string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	fmt.Printf("Config already exists at %s. Overwrite? [y/N]: ", configPath)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
