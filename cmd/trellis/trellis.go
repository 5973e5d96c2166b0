// Package trelliscmder
package trelliscmder

import (
	browsecmder "github.com/papercomputeco/trellis/cmd/trellis/browse"
	configcmder "github.com/papercomputeco/trellis/cmd/trellis/config"
	exportcmder "github.com/papercomputeco/trellis/cmd/trellis/export"
	initcmder "github.com/papercomputeco/trellis/cmd/trellis/init"
	servecmder "github.com/papercomputeco/trellis/cmd/trellis/serve"
	versioncmder "github.com/papercomputeco/trellis/cmd/version"
	"github.com/spf13/cobra"
)

const trellisLongDesc string = `Trellis is a knowledge graph memory server for agents.

Run the MCP server using:
  trellis serve         Run the MCP server over stdio
  trellis serve http    Run the MCP server over HTTP with the REST API

Inspect the graph using:
  trellis export        Dump the store as N-Quads
  trellis browse        Browse graphs and triples in a TUI`

const trellisShortDesc string = "Trellis - Knowledge Graph Memory"

func NewTrellisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trellis",
		Short: trellisShortDesc,
		Long:  trellisLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .trellis config directory")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(exportcmder.NewExportCmd())
	cmd.AddCommand(browsecmder.NewBrowseCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
