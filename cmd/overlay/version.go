package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/overlay"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of overlay",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "overlay version %s\n", strings.TrimSpace(overlay.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
