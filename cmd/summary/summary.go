// Package summary implements the summary command: totals, expense breakdown by
// category and the daily income/expense timeline of a date range.
package summary

import (
	"context"
	"fmt"
	"io"

	"fjacquet/biztrack/cmd/common"
	"fjacquet/biztrack/cmd/root"
	"fjacquet/biztrack/internal/aggregate"
	"fjacquet/biztrack/internal/container"
	"fjacquet/biztrack/internal/currencyutils"
	"fjacquet/biztrack/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the summary command flags.
type Options struct {
	From   string
	To     string
	Format string
}

var opts = Options{Format: validation.FormatTable}

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize income and expenses over a date range",
	Long: `Show total income, total expense and balance in the main currency, the expense
breakdown by category and the per-day timeline for the range.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.ContainerFrom(cmd.Context())
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c, opts, cmd.OutOrStdout())
	},
}

func init() {
	common.AddRangeFlags(Cmd.Flags(), &opts.From, &opts.To)
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", validation.FormatTable, "Output format (table, json, yaml)")
}

// Run computes the summary of the range and prints it to w.
func Run(ctx context.Context, c *container.Container, o Options, w io.Writer) error {
	if err := validation.IsValidOutputFormat(o.Format); err != nil {
		return err
	}
	r, err := common.ParseRange(o.From, o.To, c.Now())
	if err != nil {
		return err
	}
	settings, err := c.GetSettings().Get(ctx)
	if err != nil {
		return err
	}
	txs, err := c.GetLedger().List(ctx)
	if err != nil {
		return err
	}

	view := common.NewSummaryView(aggregate.FilterByRange(txs, r), r, settings)
	return common.Render(w, o.Format, view, func(w io.Writer) error {
		return writeTables(w, view)
	})
}

func writeTables(w io.Writer, view common.SummaryView) error {
	cur := view.Currency
	fmt.Fprintf(w, "Summary %s (%d transactions)\n", view.Range, view.Count)
	if err := common.WriteTable(w, []string{"Ingresos", "Egresos", "Balance"}, [][]string{{
		currencyutils.FormatAmount(view.Totals.Income, cur),
		currencyutils.FormatAmount(view.Totals.Expense, cur),
		currencyutils.FormatAmount(view.Totals.Balance, cur),
	}}); err != nil {
		return err
	}

	if len(view.Categories) > 0 {
		rows := make([][]string, 0, len(view.Categories))
		for _, ct := range view.Categories {
			rows = append(rows, []string{ct.Name, currencyutils.FormatAmount(ct.Value, cur)})
		}
		if err := common.WriteTable(w, []string{"Categoría", "Egresos"}, rows); err != nil {
			return err
		}
	}

	if len(view.Timeline) > 0 {
		rows := make([][]string, 0, len(view.Timeline))
		for _, p := range view.Timeline {
			rows = append(rows, []string{
				p.Date,
				currencyutils.FormatAmount(p.Income, cur),
				currencyutils.FormatAmount(p.Expense, cur),
			})
		}
		if err := common.WriteTable(w, []string{"Fecha", "Ingresos", "Egresos"}, rows); err != nil {
			return err
		}
	}
	return nil
}
