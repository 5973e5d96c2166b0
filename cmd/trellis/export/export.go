// Package exportcmder provides the export command for dumping the store as N-Quads.
package exportcmder

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/trellis/pkg/config"
	"github.com/papercomputeco/trellis/pkg/logger"
	"github.com/papercomputeco/trellis/pkg/rdf"
	"github.com/papercomputeco/trellis/pkg/store"
	"github.com/papercomputeco/trellis/pkg/store/trigo"
)

type exportCommander struct {
	storePath string
	namespace string
	output    string
	debug     bool
	logger    *zap.Logger
}

const exportLongDesc string = `Export the store as N-Quads.

Without arguments the whole store is exported in deterministic order. Pass a
graph name to export a single named graph.

Examples:
  trellis export
  trellis export facts
  trellis export conversation/chat-123 -o chat.nq`

const exportShortDesc string = "Export the store as N-Quads"

func NewExportCmd() *cobra.Command {
	cmder := &exportCommander{}

	cmd := &cobra.Command{
		Use:   "export [graph]",
		Short: exportShortDesc,
		Long:  exportLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

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

			graphName := ""
			if len(args) == 1 {
				graphName = args[0]
			}

			return cmder.run(cmd.Context(), graphName)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagStore, &cmder.storePath)
	config.AddStringFlag(cmd, config.Flags, config.FlagNamespace, &cmder.namespace)
	cmd.Flags().StringVarP(&cmder.output, "output", "o", "", "Write output to a file instead of stdout")

	return cmd
}

func (c *exportCommander) run(ctx context.Context, graphName string) error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	var graph *rdf.Term
	if graphName != "" {
		resolved, err := rdf.GraphIRI(c.namespace, graphName)
		if err != nil {
			return fmt.Errorf("invalid graph name: %w", err)
		}
		graph = &resolved
	}

	manager, err := store.NewManager(store.ManagerConfig{
		Path:   c.storePath,
		Open:   trigo.Open,
		Logger: c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating store manager: %w", err)
	}
	defer manager.Close()

	var dump string
	err = manager.View(ctx, func(engine store.Engine) error {
		var exportErr error
		dump, exportErr = store.ExportNQuads(ctx, engine, graph)
		return exportErr
	})
	if err != nil {
		return fmt.Errorf("exporting store: %w", err)
	}

	if c.output == "" {
		fmt.Print(dump)
		return nil
	}

	if err := os.WriteFile(c.output, []byte(dump), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	c.logger.Debug("wrote export file",
		zap.String("path", c.output),
		zap.Int("bytes", len(dump)),
	)
	return nil
}
