// Package add implements the add command, which records a new transaction.
package add

import (
	"context"
	"fmt"
	"io"

	"fjacquet/biztrack/cmd/common"
	"fjacquet/biztrack/cmd/root"
	"fjacquet/biztrack/internal/container"
	"fjacquet/biztrack/internal/currencyutils"
	"fjacquet/biztrack/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income or expense transaction",
	Long: `Record a new income or expense transaction.

The secondary currency is only accepted when dual currency is enabled in the settings,
and then requires --rate. The category defaults to the first configured category of
the transaction type and the date defaults to today.`,
	Example: `  biztrack add --type expense --amount 120.50 --category Alquiler
  biztrack add -t income -a 300 --currency secondary --rate 1.08 --photo receipt.jpg`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.ContainerFrom(cmd.Context())
		if err != nil {
			return err
		}
		_, err = Run(cmd.Context(), c, common.InputFromFlags(cmd.Flags()), cmd.OutOrStdout())
		return err
	},
}

func init() {
	common.AddTransactionFlags(Cmd.Flags())
	_ = Cmd.MarkFlagRequired(common.FlagType)
	_ = Cmd.MarkFlagRequired(common.FlagAmount)
}

// Run builds the transaction from in, stores it and prints a confirmation to w.
func Run(ctx context.Context, c *container.Container, in common.TransactionInput, w io.Writer) (models.Transaction, error) {
	settings, err := c.GetSettings().Get(ctx)
	if err != nil {
		return models.Transaction{}, err
	}

	tx, err := common.BuildTransaction(in, nil, common.BuildOptions{
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

	fmt.Fprintf(w, "Added %s %s %s on %s [%s]\n",
		tx.Type.Label(),
		currencyutils.FormatAmount(tx.Amount, settings.CurrencyLabel(tx.Currency)),
		tx.Category,
		tx.DayKey(),
		tx.ID)
	return tx, nil
}
