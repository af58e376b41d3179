package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"karuta-server/internal/rng"
	"karuta-server/pkg/catalog"
	"karuta-server/pkg/layout"
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Deal a sample field",
	Long: `Deal shuffles the catalog, deals cards to both sides and prints the
automatic layout. The opponent's rows are printed above the center line.

Examples:
  karuta deal
  karuta deal --count 20 --seed 42
  karuta deal --catalog karuta_data.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		path, _ := cmd.Flags().GetString("catalog")

		cat := catalog.Generated()
		if path != "" {
			var err error
			if cat, err = catalog.LoadFile(path); err != nil {
				return err
			}
		}

		var g rng.Generator = rng.Crypto{}
		if seed != 0 {
			g = rng.NewSeeded(seed)
		}

		field, deal, err := dealField(cat, count, g)
		if err != nil {
			return err
		}

		printField(cmd.OutOrStdout(), field)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d blank cards\n", len(deal.Blank))
		return nil
	},
}

func init() {
	dealCmd.Flags().Int("count", layout.MaxCardCount, "number of cards on the field")
	dealCmd.Flags().Int64("seed", 0, "seed for a repeatable deal (0 is random)")
	dealCmd.Flags().String("catalog", "", "path to a catalog file (placeholder cards if empty)")
}

func dealField(cat *catalog.Catalog, count int, g rng.Generator) (*layout.Field, *layout.Deal, error) {
	deal, err := layout.NewDeal(cat.IDs(), count, g)
	if err != nil {
		return nil, nil, err
	}

	field := layout.NewField()
	field.Place(layout.Own, deal.Own, g)
	field.Place(layout.Opponent, deal.Opponent, g)

	return field, deal, nil
}

var tierColors = map[layout.Tier]*color.Color{
	layout.TierA: color.New(color.FgYellow, color.Bold),
	layout.TierB: color.New(color.FgCyan),
	layout.TierC: color.New(color.Reset),
}

func printField(w io.Writer, field *layout.Field) {
	for row := layout.Bottom; row >= layout.Top; row-- {
		printRow(w, field, layout.Opponent, row)
	}

	fmt.Fprintln(w, strings.Repeat("-", 72))

	for row := layout.Top; row <= layout.Bottom; row++ {
		printRow(w, field, layout.Own, row)
	}
}

func printRow(w io.Writer, field *layout.Field, side layout.Side, row layout.Row) {
	left := formatSlot(field.Slot(layout.SlotKey{Side: side, Row: row, Column: layout.Left}))
	right := formatSlot(field.Slot(layout.SlotKey{Side: side, Row: row, Column: layout.Right}))
	fmt.Fprintf(w, "%-15s %s | %s\n", side.String()+"-"+row.String(), left, right)
}

func formatSlot(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, tierColors[layout.TierOf(id)].Sprintf("%3d", id))
	}

	return strings.Join(parts, " ")
}
