package common

import (
	"encoding/json"
	"fmt"
	"io"

	"fjacquet/biztrack/internal/validation"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Render writes v as JSON or YAML, or calls tableFn for the table format.
func Render(w io.Writer, format string, v any, tableFn func(io.Writer) error) error {
	switch format {
	case validation.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case validation.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case validation.FormatTable:
		if tableFn == nil {
			return fmt.Errorf("table output is not available here")
		}
		return tableFn(w)
	default:
		return validation.IsValidOutputFormat(format)
	}
}

// WriteTable renders headers and rows as a bordered text table.
func WriteTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
