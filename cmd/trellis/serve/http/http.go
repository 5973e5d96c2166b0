// Package httpcmder provides the serve http cobra command.
package httpcmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/trellis/api"
	trellismcp "github.com/papercomputeco/trellis/api/mcp"
	"github.com/papercomputeco/trellis/pkg/config"
	"github.com/papercomputeco/trellis/pkg/logger"
	"github.com/papercomputeco/trellis/pkg/prefix"
	"github.com/papercomputeco/trellis/pkg/store"
	"github.com/papercomputeco/trellis/pkg/store/trigo"
)

type httpCommander struct {
	storePath string
	namespace string
	listen    string
	debug     bool
	logger    *zap.Logger
}

const httpLongDesc string = `Run the Trellis MCP server over HTTP.

Serves the MCP protocol at /mcp using the streamable HTTP transport, plus a
REST API for inspecting the store (/stats, /graphs, /prefixes, /export).`

const httpShortDesc string = "Run the Trellis MCP server over HTTP"

func NewHTTPCmd() *cobra.Command {
	cmder := &httpCommander{}

	cmd := &cobra.Command{
		Use:   "http",
		Short: httpShortDesc,
		Long:  httpLongDesc,
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
				config.FlagAPIListen,
			})
			cmder.storePath = v.GetString(config.Flags[config.FlagStore].ViperKey)
			cmder.namespace = v.GetString(config.Flags[config.FlagNamespace].ViperKey)
			cmder.listen = v.GetString(config.Flags[config.FlagAPIListen].ViperKey)

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagStore, &cmder.storePath)
	config.AddStringFlag(cmd, config.Flags, config.FlagNamespace, &cmder.namespace)
	config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &cmder.listen)

	return cmd
}

func (c *httpCommander) run() error {
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

	registry := prefix.NewRegistry()

	mcpServer, err := trellismcp.NewServer(trellismcp.Config{
		Manager:   manager,
		Prefixes:  registry,
		Namespace: c.namespace,
		Logger:    c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	apiConfig := api.Config{
		ListenAddr: c.listen,
		Namespace:  c.namespace,
	}

	apiServer, err := api.NewServer(apiConfig, manager, registry, mcpServer.Handler(), c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	c.logger.Info("starting HTTP server",
		zap.String("listen", c.listen),
	)

	// Channel to capture errors from the server goroutine
	errChan := make(chan error, 1)

	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return apiServer.Shutdown()
	}
}
