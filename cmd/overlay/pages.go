package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List pages in sidebar order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		pages, err := a.site.Pages(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(pages)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "POS\tID\tTITLE\tPERMALINK")
		for _, p := range pages {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.SidebarPosition, p.ID, p.Title, p.Permalink)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	pagesCmd.Flags().Bool("json", false, "Print pages as JSON")
}
