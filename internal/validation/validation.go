// Package validation checks and normalizes user input coming from the command line.
package validation

import (
	"os"
	"strings"

	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/models"
)

// Output formats for list, summary and settings show.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ParseTransactionType accepts income/expense in any case, plus the Spanish labels.
func ParseTransactionType(s string) (models.TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "ingreso":
		return models.TypeIncome, nil
	case "expense", "egreso":
		return models.TypeExpense, nil
	default:
		return "", &ledgererror.ValidationError{Field: "type", Value: s, Reason: "must be income or expense"}
	}
}

// ParseCurrencySlot accepts main/secondary in any case. Empty means main.
func ParseCurrencySlot(s string) (models.CurrencySlot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "main":
		return models.CurrencyMain, nil
	case "secondary":
		return models.CurrencySecondary, nil
	default:
		return "", &ledgererror.ValidationError{Field: "currency", Value: s, Reason: "must be main or secondary"}
	}
}

// CheckCurrencyAllowed rejects the secondary slot while dual currency is disabled.
func CheckCurrencyAllowed(settings models.AppSettings, slot models.CurrencySlot) error {
	if slot == models.CurrencySecondary && !settings.EnableDualCurrency {
		return &ledgererror.ValidationError{Field: "currency", Value: string(slot), Reason: "dual currency is disabled in settings"}
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = []string{FormatTable, FormatJSON, FormatYAML}
	}
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return &ledgererror.ValidationError{
		Field:  "format",
		Value:  format,
		Reason: "supported formats are " + strings.Join(allowed, ", "),
	}
}

// IsValidFilePermissions checks that others have no access to a data file.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return &ledgererror.ValidationError{
			Field:  "permissions",
			Value:  mode.String(),
			Reason: "too permissive, recommended 0600",
		}
	}
	return nil
}
