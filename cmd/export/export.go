// Package export implements the export command, which writes CSV, XLSX and PDF reports
// of a date range.
package export

import (
	"context"
	"fmt"
	"io"

	"fjacquet/biztrack/cmd/common"
	"fjacquet/biztrack/cmd/root"
	"fjacquet/biztrack/internal/aggregate"
	"fjacquet/biztrack/internal/container"
	"fjacquet/biztrack/internal/report"
	"fjacquet/biztrack/internal/share"

	"github.com/spf13/cobra"
)

// Options are the export command flags.
type Options struct {
	Kind   string
	From   string
	To     string
	Output string
}

var opts = Options{Kind: report.KindAll}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transactions of a date range as CSV, XLSX or PDF",
	Long: `Export the transactions of a date range. Files are named
reporte_biztrack_<YYYY-MM-DD>.<ext> after the export date.

With export.mode "direct" (the default) files are written to export.output_dir;
with "share" they go to the user cache directory and are handed to the share command.
--output always writes directly to the given directory.`,
	Example: `  biztrack export --kind pdf --from 2024-01-01 --to 2024-01-31
  biztrack export --output ~/Documents`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.ContainerFrom(cmd.Context())
		if err != nil {
			return err
		}
		_, err = Run(cmd.Context(), c, opts, cmd.OutOrStdout())
		return err
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Kind, "kind", "k", report.KindAll, "Report kind (csv, xlsx, pdf, all)")
	common.AddRangeFlags(Cmd.Flags(), &opts.From, &opts.To)
	Cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the files to this directory instead of the configured destination")
}

// Run exports the transactions of the range and returns where each artifact went.
// An empty range is rejected with ledgererror.ErrNothingToExport.
func Run(ctx context.Context, c *container.Container, o Options, w io.Writer) ([]string, error) {
	kinds, err := report.ParseKinds(o.Kind)
	if err != nil {
		return nil, err
	}
	r, err := common.ParseRange(o.From, o.To, c.Now())
	if err != nil {
		return nil, err
	}
	settings, err := c.GetSettings().Get(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := c.GetLedger().List(ctx)
	if err != nil {
		return nil, err
	}

	exporter := c.GetExporter()
	if o.Output != "" {
		cfg := c.GetConfig()
		exporter = report.NewExporter(c.GetLogger(), cfg.CSVDelimiter(), share.NewDirectSaver(o.Output, c.GetLogger()))
	}

	meta := report.Meta{Range: r, GeneratedAt: c.Now(), Settings: settings}
	selected := aggregate.SortByDateDesc(aggregate.FilterByRange(txs, r))

	locations, err := exporter.Export(ctx, kinds, selected, meta)
	for _, loc := range locations {
		fmt.Fprintf(w, "Exported %s\n", loc)
	}
	if err != nil {
		return locations, fmt.Errorf("export of %s failed: %w", r, err)
	}
	return locations, nil
}
