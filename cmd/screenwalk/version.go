package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/screenwalk"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of screenwalk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("screenwalk version %s\n", strings.TrimSpace(screenwalk.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
