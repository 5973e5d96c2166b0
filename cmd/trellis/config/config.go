// Package configcmder provides the config command for managing persistent
// trellis configuration stored in the .trellis/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent trellis configuration.

Configuration is stored as config.toml in the .trellis/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  storage.path, namespace.base, api.listen

Use subcommands to get, set, or list configuration values:
  trellis config set <key> <value>    Set a configuration value
  trellis config get <key>            Get a configuration value
  trellis config list                 List all configuration values

Examples:
  trellis config set storage.path ./trellis.db
  trellis config set namespace.base http://example.org/graphs/
  trellis config get api.listen
  trellis config list`

const configShortDesc string = "Manage persistent trellis configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
