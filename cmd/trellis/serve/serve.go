// Package servecmder provides the serve command for running the MCP server.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	trellismcp "github.com/papercomputeco/trellis/api/mcp"
	httpcmder "github.com/papercomputeco/trellis/cmd/trellis/serve/http"
	"github.com/papercomputeco/trellis/pkg/config"
	"github.com/papercomputeco/trellis/pkg/logger"
	"github.com/papercomputeco/trellis/pkg/prefix"
	"github.com/papercomputeco/trellis/pkg/store"
	"github.com/papercomputeco/trellis/pkg/store/trigo"
)

type ServeCommander struct {
	storePath string
	namespace string
	debug     bool
	logger    *zap.Logger
}

const serveLongDesc string = `Run the Trellis MCP server.

Without a subcommand the server speaks the MCP protocol over stdio, which is
how MCP clients launch it. Logs go to stderr so stdout stays clean for the
protocol stream.

Use the http subcommand to serve MCP over HTTP alongside the REST API:
  trellis serve         Run the MCP server over stdio
  trellis serve http    Run the MCP server over HTTP with the REST API`

const serveShortDesc string = "Run the Trellis MCP server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			return cmder.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagStore, &cmder.storePath)
	config.AddStringFlag(cmd, config.Flags, config.FlagNamespace, &cmder.namespace)

	cmd.AddCommand(httpcmder.NewHTTPCmd())

	return cmd
}

func (c *ServeCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	manager, err := store.NewManager(store.ManagerConfig{
		Path:   c.storePath,
		Open:   trigo.Open,
		Logger: c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating store manager: %w", err)
	}
	defer manager.Close()

	if manager.Persistent() {
		watcher, err := store.NewWatcher(manager.Path(), c.logger)
		if err != nil {
			c.logger.Warn("store watcher unavailable", zap.Error(err))
		} else {
			defer watcher.Close()
		}
		c.logger.Info("using persistent storage", zap.String("path", manager.Path()))
	} else {
		c.logger.Info("using in-memory storage")
	}

	server, err := trellismcp.NewServer(trellismcp.Config{
		Manager:   manager,
		Prefixes:  prefix.NewRegistry(),
		Namespace: c.namespace,
		Logger:    c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	c.logger.Info("starting MCP server on stdio")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Channel to capture errors from the server goroutine
	errChan := make(chan error, 1)

	go func() {
		errChan <- server.Run(ctx)
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
		return nil
	}
}
