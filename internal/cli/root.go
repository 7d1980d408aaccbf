// Package cli wires configuration, logging, the view store and the HTTP server behind cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Read-only reporting dashboard over PostgreSQL views",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to the YAML config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newPingCmd(&configPath),
		newReportsCmd(),
	)
	return root
}
