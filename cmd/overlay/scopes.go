package main

import (
	"fmt"

	"github.com/aretw0/overlay/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// scopesCmd represents the scopes command
var scopesCmd = &cobra.Command{
	Use:   "scopes <page-id>",
	Short: "Export the override scopes of a page",
	Long:  `Outputs a Mermaid diagram (graph TD) of the nodes of a page that override components, linked to the scope they inherit from.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		page, err := a.site.Page(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		highlight, _ := cmd.Flags().GetString("highlight")
		fmt.Fprint(cmd.OutOrStdout(), graph.ScopeMermaid(page, highlight))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scopesCmd)
	scopesCmd.Flags().String("highlight", "", "Node ID to highlight")
}
