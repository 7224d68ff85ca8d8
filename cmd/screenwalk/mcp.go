package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/screenwalk"
	"github.com/aretw0/screenwalk/internal/adapters/mcp"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/observability"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Launches the application and exposes the navigator as MCP tools
(list_screens, current_screen, goto, perform_action, open_url).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		cfg, logger, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := newEnv(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.driver.Launch(ctx, domain.DefaultLaunchArguments()); err != nil {
			return err
		}
		defer func() { _ = e.driver.Terminate(context.Background()) }()

		h := screenwalk.New(e.driver,
			screenwalk.WithLogger(logger),
			screenwalk.WithLifecycleHooks(observability.LoggingHooks(logger)),
			screenwalk.WithWaitOptions(cfg.WaitOptions()),
		)
		if err := h.Start(ctx); err != nil {
			return err
		}

		srv := mcp.NewServer(h, logger)
		switch transport {
		case "stdio":
			logger.Info("starting screenwalk MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			if err := srv.ServeSSE(ctx, cfg.Serve.MCPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped")
			return nil
		default:
			return fmt.Errorf("unknown transport %q, supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
}
