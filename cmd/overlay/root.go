package main

import (
	"fmt"
	"os"

	"github.com/aretw0/overlay/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Overlay renders documentation pages with scoped component overrides",
	Long: `Overlay loads a directory of documentation pages (Markdown, YAML or JSON with frontmatter)
and renders them, letting any part of a page override the components used by its subtree.`,
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
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the pages (overrides the config file)")
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}
