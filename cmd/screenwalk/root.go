package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/screenwalk/internal/config"
	"github.com/aretw0/screenwalk/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screenwalk",
	Short: "screenwalk walks a mobile browser through its screens and checks what it shows",
	Long: `screenwalk is a UI acceptance-test harness. It drives the application under test
through its accessibility tree, following a graph of screens and actions, and runs
the home page settings suite against a simulator or a WebDriverAgent device.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().String("driver", "", "Driver to use: 'sim' or 'wda'")
	rootCmd.PersistentFlags().String("device", "", "Simulated device: 'phone' or 'tablet'")
	rootCmd.PersistentFlags().String("wda-url", "", "WebDriverAgent base URL")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"driver":    "driver",
	"device":    "device",
	"wda-url":   "wda.url",
	"log-level": "log_level",
}

// loadConfig reads --config and applies every flag the user set explicitly.
func loadConfig(cmd *cobra.Command, extra map[string]any) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")

	overrides := map[string]any{}
	for flag, key := range flagKeys {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			overrides[key] = v
		}
	}
	for k, v := range extra {
		overrides[k] = v
	}

	cfg, err := config.Load(path, overrides)
	if err != nil {
		return config.Config{}, nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(level), nil
}
