// Package receipt implements the receipt command, which saves the photo attached to a
// transaction back to an image file.
package receipt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/biztrack/cmd/root"
	"fjacquet/biztrack/internal/attachment"
	"fjacquet/biztrack/internal/container"
	"fjacquet/biztrack/internal/fileutils"
	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/models"

	"github.com/spf13/cobra"
)

var output string

// Cmd represents the receipt command
var Cmd = &cobra.Command{
	Use:   "receipt <id>",
	Short: "Save the receipt photo of a transaction to a file",
	Long: `Save the receipt photo attached to a transaction. Without --output the file is
written to the current directory as <id>.<ext>.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.ContainerFrom(cmd.Context())
		if err != nil {
			return err
		}
		_, err = Run(cmd.Context(), c, args[0], output, cmd.OutOrStdout())
		return err
	},
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file")
}

// Run writes the photo of transaction id to path and returns the path written.
func Run(ctx context.Context, c *container.Container, id, path string, w io.Writer) (string, error) {
	tx, found, err := c.GetLedger().Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("transaction %s: %w", id, ledgererror.ErrNotFound)
	}
	if !tx.HasPhoto() {
		return "", fmt.Errorf("transaction %s has no receipt photo", id)
	}

	mime, data, err := attachment.Decode(tx.Photo)
	if err != nil {
		return "", fmt.Errorf("stored photo of %s is unreadable: %w", id, err)
	}

	if path == "" {
		path = id + "." + extension(mime)
	}
	path, err = fileutils.ExpandHome(path)
	if err != nil {
		return "", err
	}
	if err := fileutils.WriteFile(path, data, models.PermissionDataFile); err != nil {
		return "", err
	}

	fmt.Fprintf(w, "Saved %s receipt to %s\n", mime, path)
	return path, nil
}

func extension(mime string) string {
	sub := strings.TrimPrefix(mime, "image/")
	switch sub {
	case "jpeg":
		return "jpg"
	case "":
		return "img"
	}
	return sub
}
