// Package currencyutils parses and formats the amounts and exchange rates typed on the command line.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/biztrack/internal/ledgererror"

	"github.com/shopspring/decimal"
)

var symbolPattern = regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪\s]`)

// ParseAmount parses a user-entered, non-negative transaction amount.
// It handles formats like "1,234.56", "1.234,56", "1234.56", "1234,56", "$12".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, &ledgererror.ValidationError{Field: "amount", Reason: "must not be empty"}
	}

	amount, err := decimal.NewFromString(StandardizeAmount(amountStr))
	if err != nil {
		return decimal.Zero, &ledgererror.ValidationError{Field: "amount", Value: amountStr, Reason: "not a number", Err: err}
	}
	if amount.IsNegative() {
		return decimal.Zero, &ledgererror.ValidationError{Field: "amount", Value: amountStr, Reason: "must not be negative"}
	}
	return amount, nil
}

// ParseRate parses an exchange rate into the main currency. Rates must be positive.
func ParseRate(rateStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(rateStr) == "" {
		return decimal.Zero, &ledgererror.ValidationError{Field: "rate", Reason: "must not be empty"}
	}

	rate, err := decimal.NewFromString(StandardizeAmount(rateStr))
	if err != nil {
		return decimal.Zero, &ledgererror.ValidationError{Field: "rate", Value: rateStr, Reason: "not a number", Err: err}
	}
	if !rate.IsPositive() {
		return decimal.Zero, &ledgererror.ValidationError{Field: "rate", Value: rateStr, Reason: "must be positive"}
	}
	return rate, nil
}

// StandardizeAmount converts various currency string formats to a standard format that can be
// parsed by decimal.NewFromString. Handles "$1,234.56", "€1.234,56", "1'234.56", "1 234,56".
func StandardizeAmount(amountStr string) string {
	amountStr = symbolPattern.ReplaceAllString(amountStr, "")
	amountStr = strings.TrimPrefix(strings.ToUpper(amountStr), "CHF")

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return strings.ReplaceAll(amountStr, "'", "")
}

// FormatAmount renders an amount with two decimals followed by the currency code,
// e.g. "1234.56 USD". An empty currency yields just the number.
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
}

// FormatRate renders an exchange rate without trailing zeros, e.g. "3.5".
func FormatRate(rate decimal.Decimal) string {
	return rate.String()
}
