// Package edit implements the edit command, which replaces a stored transaction.
package edit

import (
	"context"
	"fmt"
	"io"

	"fjacquet/biztrack/cmd/common"
	"fjacquet/biztrack/cmd/root"
	"fjacquet/biztrack/internal/container"
	"fjacquet/biztrack/internal/currencyutils"
	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the edit command
var Cmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a recorded transaction",
	Long: `Change a recorded transaction. Only the given flags change; every other field keeps
its stored value and the whole record is written back under the same id.
Pass --photo "" to remove an attached receipt.`,
	Example: `  biztrack edit 3f0c... --amount 99.90
  biztrack edit 3f0c... --type income --category Ventas`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.ContainerFrom(cmd.Context())
		if err != nil {
			return err
		}
		_, err = Run(cmd.Context(), c, args[0], common.InputFromFlags(cmd.Flags()), cmd.OutOrStdout())
		return err
	},
}

func init() {
	common.AddTransactionFlags(Cmd.Flags())
}

// Run applies in to the transaction with id and stores the result.
func Run(ctx context.Context, c *container.Container, id string, in common.TransactionInput, w io.Writer) (models.Transaction, error) {
	existing, found, err := c.GetLedger().Get(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if !found {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w", id, ledgererror.ErrNotFound)
	}

	settings, err := c.GetSettings().Get(ctx)
	if err != nil {
		return models.Transaction{}, err
	}

	tx, err := common.BuildTransaction(in, &existing, common.BuildOptions{
		Settings:      settings,
		Now:           c.Now(),
		PhotoMaxBytes: c.GetConfig().Attachment.MaxBytes,
	})
	if err != nil {
		return models.Transaction{}, err
	}

	if err := c.GetLedger().Upsert(ctx, tx); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to save transaction: %w", err)
	}

	fmt.Fprintf(w, "Updated %s: %s %s %s on %s\n",
		tx.ID,
		tx.Type.Label(),
		currencyutils.FormatAmount(tx.Amount, settings.CurrencyLabel(tx.Currency)),
		tx.Category,
		tx.DayKey())
	return tx, nil
}
