package common

import (
	"github.com/spf13/pflag"
)

// Transaction flag names shared by add and edit.
const (
	FlagType        = "type"
	FlagAmount      = "amount"
	FlagCurrency    = "currency"
	FlagRate        = "rate"
	FlagDate        = "date"
	FlagCategory    = "category"
	FlagDescription = "description"
	FlagPhoto       = "photo"
)

// AddTransactionFlags registers the transaction flags on fs.
func AddTransactionFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagType, "t", "", "Transaction type: income or expense")
	fs.StringP(FlagAmount, "a", "", "Amount in the transaction currency (non-negative)")
	fs.StringP(FlagCurrency, "c", "", "Currency slot: main or secondary")
	fs.StringP(FlagRate, "r", "", "Exchange rate to the main currency (secondary currency only)")
	fs.StringP(FlagDate, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	fs.StringP(FlagCategory, "g", "", "Category (defaults to the first category of the type)")
	fs.StringP(FlagDescription, "m", "", "Free-text description")
	fs.StringP(FlagPhoto, "p", "", "Path to a receipt image; an empty value removes the photo")
}

// InputFromFlags collects the flags that were explicitly set on fs.
func InputFromFlags(fs *pflag.FlagSet) TransactionInput {
	return TransactionInput{
		Type:        changed(fs, FlagType),
		Amount:      changed(fs, FlagAmount),
		Currency:    changed(fs, FlagCurrency),
		Rate:        changed(fs, FlagRate),
		Date:        changed(fs, FlagDate),
		Category:    changed(fs, FlagCategory),
		Description: changed(fs, FlagDescription),
		Photo:       changed(fs, FlagPhoto),
	}
}

func changed(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

// AddRangeFlags registers --from and --to.
func AddRangeFlags(fs *pflag.FlagSet, from, to *string) {
	fs.StringVar(from, "from", "", "First day of the range, YYYY-MM-DD (default: first day of this month)")
	fs.StringVar(to, "to", "", "Last day of the range, YYYY-MM-DD (default: today)")
}
