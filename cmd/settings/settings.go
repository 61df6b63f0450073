// Package settings implements the settings command group: show the persisted settings,
// change the currencies and edit the category lists.
package settings

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/biztrack/cmd/common"
	"fjacquet/biztrack/cmd/root"
	"fjacquet/biztrack/internal/container"
	"fjacquet/biztrack/internal/models"
	"fjacquet/biztrack/internal/validation"

	"github.com/spf13/cobra"
)

// CurrencyOptions carries the currency flags. A nil field keeps the stored value.
type CurrencyOptions struct {
	Main      *string
	Secondary *string
	Dual      *bool
}

var (
	showFormat   = validation.FormatYAML
	categoryType string
)

// Cmd represents the settings command
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change currencies and categories",
	Long:  `Show or change the persisted settings: main and secondary currency, dual-currency mode and the category lists.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.ContainerFrom(cmd.Context())
		if err != nil {
			return err
		}
		return RunShow(cmd.Context(), c, showFormat, cmd.OutOrStdout())
	},
}

var currencyCmd = &cobra.Command{
	Use:   "currency",
	Short: "Change the currencies and the dual-currency mode",
	Example: `  biztrack settings currency --main CHF
  biztrack settings currency --secondary EUR --dual`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.ContainerFrom(cmd.Context())
		if err != nil {
			return err
		}
		var o CurrencyOptions
		fs := cmd.Flags()
		if fs.Changed("main") {
			v, _ := fs.GetString("main")
			o.Main = &v
		}
		if fs.Changed("secondary") {
			v, _ := fs.GetString("secondary")
			o.Secondary = &v
		}
		if fs.Changed("dual") {
			v, _ := fs.GetBool("dual")
			o.Dual = &v
		}
		_, err = RunCurrency(cmd.Context(), c, o, cmd.OutOrStdout())
		return err
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Add or remove categories",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a category to the income or expense list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.ContainerFrom(cmd.Context())
		if err != nil {
			return err
		}
		return RunCategoryAdd(cmd.Context(), c, categoryType, args[0], cmd.OutOrStdout())
	},
}

var categoryRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a category from the income or expense list",
	Long:  `Remove a category. Transactions already filed under it keep their category.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.ContainerFrom(cmd.Context())
		if err != nil {
			return err
		}
		return RunCategoryRemove(cmd.Context(), c, categoryType, args[0], cmd.OutOrStdout())
	},
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", validation.FormatYAML, "Output format (yaml, json)")

	currencyCmd.Flags().String("main", "", "Main currency code, e.g. USD")
	currencyCmd.Flags().String("secondary", "", "Secondary currency code, e.g. EUR")
	currencyCmd.Flags().Bool("dual", false, "Enable dual currency (--dual=false disables it)")

	categoryCmd.PersistentFlags().StringVarP(&categoryType, "type", "t", "", "Category list: income or expense")
	_ = categoryCmd.MarkPersistentFlagRequired("type")

	categoryCmd.AddCommand(categoryAddCmd, categoryRemoveCmd)
	Cmd.AddCommand(showCmd, currencyCmd, categoryCmd)
}

// RunShow prints the settings as YAML or JSON.
func RunShow(ctx context.Context, c *container.Container, format string, w io.Writer) error {
	if err := validation.IsValidOutputFormat(format, validation.FormatYAML, validation.FormatJSON); err != nil {
		return err
	}
	s, err := c.GetSettings().Get(ctx)
	if err != nil {
		return err
	}
	return common.Render(w, format, s, nil)
}

// RunCurrency merges o into the stored currency settings and saves them.
func RunCurrency(ctx context.Context, c *container.Container, o CurrencyOptions, w io.Writer) (models.AppSettings, error) {
	current, err := c.GetSettings().Get(ctx)
	if err != nil {
		return models.AppSettings{}, err
	}
	main, secondary, dual := current.CurrencyMain, current.CurrencySecondary, current.EnableDualCurrency
	if o.Main != nil {
		main = *o.Main
	}
	if o.Secondary != nil {
		secondary = *o.Secondary
	}
	if o.Dual != nil {
		dual = *o.Dual
	}

	next, err := c.GetSettings().UpdateCurrencies(ctx, main, secondary, dual)
	if err != nil {
		return models.AppSettings{}, err
	}

	mode := "disabled"
	if next.EnableDualCurrency {
		mode = "enabled"
	}
	fmt.Fprintf(w, "Main currency %s, secondary currency %s, dual currency %s\n", next.CurrencyMain, next.CurrencySecondary, mode)
	return next, nil
}

// RunCategoryAdd adds name to the list of the given type.
func RunCategoryAdd(ctx context.Context, c *container.Container, typ, name string, w io.Writer) error {
	t, err := validation.ParseTransactionType(typ)
	if err != nil {
		return err
	}
	if _, err := c.GetSettings().AddCategory(ctx, t, name); err != nil {
		return err
	}
	fmt.Fprintf(w, "Added %s category %q\n", strings.ToLower(string(t)), strings.TrimSpace(name))
	return nil
}

// RunCategoryRemove removes name from the list of the given type.
func RunCategoryRemove(ctx context.Context, c *container.Container, typ, name string, w io.Writer) error {
	t, err := validation.ParseTransactionType(typ)
	if err != nil {
		return err
	}
	s, err := c.GetSettings().Get(ctx)
	if err != nil {
		return err
	}
	present := false
	for _, existing := range s.Categories(t) {
		if existing == name {
			present = true
			break
		}
	}
	if err := c.GetSettings().RemoveCategory(ctx, t, name); err != nil {
		return err
	}
	if !present {
		fmt.Fprintf(w, "No %s category %q\n", strings.ToLower(string(t)), name)
		return nil
	}
	fmt.Fprintf(w, "Removed %s category %q\n", strings.ToLower(string(t)), name)
	return nil
}
