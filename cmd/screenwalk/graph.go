package main

import (
	"context"
	"fmt"

	"github.com/aretw0/screenwalk/internal/presentation/graph"
	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the screen graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the screens and actions, laid out for the configured device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}
		ctx := context.Background()
		e, err := newEnv(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer e.Close()

		device, err := e.driver.Device(ctx)
		if err != nil {
			return fmt.Errorf("failed to describe device: %w", err)
		}
		g, err := browser.NewGraph(device)
		if err != nil {
			return err
		}
		fmt.Print(graph.GenerateMermaid(g, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
