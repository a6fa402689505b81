// Package main is the entry point for the navtree CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mchmarny/navtree/pkg/config"
	"github.com/mchmarny/navtree/pkg/nav"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const appName = "navtree"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Navigation tree service for the main hub shell",
		Long:          `navtree validates the navigation tree of the main hub shell, serves it to the front end and dispatches selected view types to their views.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("tree", "", "navigation declaration file (YAML or JSON); defaults to the embedded tree")
	cmd.PersistentFlags().String("env-file", ".env", "optional .env file")

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(printCmd())
	cmd.AddCommand(findCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig reads the configuration, applying the --tree flag when set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if tree, _ := cmd.Flags().GetString("tree"); tree != "" {
		cfg.TreeFile = tree
	}

	return cfg, nil
}

// loadTree loads the declaration at path, or the embedded one when empty.
func loadTree(path string) (*nav.Tree, error) {
	if path == "" {
		return nav.Load()
	}
	return nav.LoadFile(path)
}
