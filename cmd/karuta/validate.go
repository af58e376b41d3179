package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"karuta-server/pkg/catalog"
	"karuta-server/pkg/layout"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a card catalog file",
	Long: `Validate checks that a card catalog is a JSON array of exactly 100 records
with unique ids from 1 to 100 and non-empty texts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			color.New(color.FgRed).Fprintf(cmd.OutOrStdout(), "%s is invalid\n", args[0])
			return err
		}

		tiers := layout.Partition(cat.IDs())
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%d cards (%d one-syllable, %d oyama, %d other)\n",
			len(cat.IDs()), len(tiers.A), len(tiers.B), len(tiers.C))

		return nil
	},
}
