package main

import (
	"fmt"

	"github.com/aretw0/overlay/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every page",
	Long:  `Renders every page in every format and checks component names, node kinds and sidebar links.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if err := validator.ValidateSite(cmd.Context(), a.site.Loader()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ All pages are valid.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
