// Package browsecmder provides the browse command for exploring the graph in a TUI.
package browsecmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/trellis/pkg/config"
	"github.com/papercomputeco/trellis/pkg/logger"
	"github.com/papercomputeco/trellis/pkg/store"
	"github.com/papercomputeco/trellis/pkg/store/trigo"
)

const browseLongDesc string = `Browse the knowledge graph in a TUI.

Lists named graphs with their quad counts and drills down into the triples of
a single graph.

Examples:
  trellis browse
  trellis browse --store ./trellis.db`

const browseShortDesc string = "Browse the knowledge graph in a TUI"

type browseCommander struct {
	storePath string
	namespace string
}

func NewBrowseCmd() *cobra.Command {
	cmder := &browseCommander{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: browseShortDesc,
		Long:  browseLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagStore,
				config.FlagNamespace,
			})
			cmder.storePath = v.GetString(config.Flags[config.FlagStore].ViperKey)
			cmder.namespace = v.GetString(config.Flags[config.FlagNamespace].ViperKey)

			return cmder.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagStore, &cmder.storePath)
	config.AddStringFlag(cmd, config.Flags, config.FlagNamespace, &cmder.namespace)

	return cmd
}

func (c *browseCommander) run(ctx context.Context) error {
	// The TUI owns the terminal, so the manager logs nowhere.
	manager, err := store.NewManager(store.ManagerConfig{
		Path:   c.storePath,
		Open:   trigo.Open,
		Logger: logger.Nop(),
	})
	if err != nil {
		return fmt.Errorf("creating store manager: %w", err)
	}
	defer manager.Close()

	rows, err := loadGraphRows(ctx, manager)
	if err != nil {
		return fmt.Errorf("loading graphs: %w", err)
	}

	return runBrowseTUI(ctx, manager, rows)
}
