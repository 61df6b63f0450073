// Package list implements the list command.
package list

import (
	"context"
	"fmt"
	"io"

	"fjacquet/biztrack/cmd/common"
	"fjacquet/biztrack/cmd/root"
	"fjacquet/biztrack/internal/aggregate"
	"fjacquet/biztrack/internal/container"
	"fjacquet/biztrack/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the list command flags.
type Options struct {
	From   string
	To     string
	Format string
}

var opts = Options{Format: validation.FormatTable}

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions in a date range, newest first",
	Long: `List the transactions whose date falls in [--from, --to], newest first.
The range defaults to the first day of the current month through today.`,
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

// Run prints the filtered transactions to w.
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

	visible := aggregate.SortByDateDesc(aggregate.FilterByRange(txs, r))
	views := common.NewTransactionViews(visible, settings)

	return common.Render(w, o.Format, views, func(w io.Writer) error {
		if len(views) == 0 {
			_, err := fmt.Fprintf(w, "No transactions between %s and %s\n", r.StartKey(), r.EndKey())
			return err
		}
		if err := common.WriteTable(w, common.TransactionHeaders, common.TransactionRows(views, settings.CurrencyMain)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%d transaction(s) from %s to %s\n", len(views), r.StartKey(), r.EndKey())
		return err
	})
}
