// Package remove implements the remove command.
package remove

import (
	"context"
	"fmt"
	"io"

	"fjacquet/biztrack/cmd/root"
	"fjacquet/biztrack/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the remove command
var Cmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete a transaction",
	Long:    `Delete a transaction permanently. Removing an unknown id changes nothing.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.ContainerFrom(cmd.Context())
		if err != nil {
			return err
		}
		_, err = Run(cmd.Context(), c, args[0], cmd.OutOrStdout())
		return err
	},
}

// Run removes the transaction with id and reports whether it existed.
func Run(ctx context.Context, c *container.Container, id string, w io.Writer) (bool, error) {
	removed, err := c.GetLedger().Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove transaction: %w", err)
	}
	if !removed {
		fmt.Fprintf(w, "No transaction with id %s\n", id)
		return false, nil
	}
	fmt.Fprintf(w, "Removed %s\n", id)
	return true, nil
}
