package main

import (
	"fmt"

	"github.com/aretw0/screenwalk/pkg/adapters/sim"
	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/uitest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration, the screen graphs and the test registry",
	Long:  `Builds the screen graph for every device layout and reports dangling edges, unreachable screens or bad test names.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}

		for _, device := range []domain.DeviceInfo{sim.Phone, sim.Tablet} {
			if _, err := browser.NewGraph(device); err != nil {
				return fmt.Errorf("%s graph: %w", device.Idiom, err)
			}
		}
		for _, name := range cfg.Tests {
			if _, ok := uitest.Default.Lookup(name); !ok {
				return fmt.Errorf("no test named %q", name)
			}
		}

		fmt.Printf("Graphs are valid, %d tests registered\n", len(uitest.Default.Tests()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
