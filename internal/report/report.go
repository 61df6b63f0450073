// Package report renders transaction sets into the CSV, XLSX and PDF export artifacts.
package report

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/biztrack/internal/aggregate"
	"fjacquet/biztrack/internal/currencyutils"
	"fjacquet/biztrack/internal/dateutils"
	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/models"

	"github.com/shopspring/decimal"
)

// Kind is an export file format.
type Kind string

// Supported export kinds.
const (
	KindCSV  Kind = "csv"
	KindXLSX Kind = "xlsx"
	KindPDF  Kind = "pdf"

	// KindAll is accepted by ParseKinds and expands to every kind.
	KindAll = "all"

	// FilePrefix starts every artifact name.
	FilePrefix = "reporte_biztrack_"
)

// AllKinds lists every renderable kind in a stable order.
var AllKinds = []Kind{KindCSV, KindXLSX, KindPDF}

// Column headers shared by the tabular formats.
var columns = []string{
	"Fecha",
	"Tipo",
	"Categoría",
	"Descripción",
	"Monto",
	"Moneda",
	"Tipo de Cambio",
	"Total (Moneda Principal)",
}

// Meta carries what a report needs besides the transactions themselves.
type Meta struct {
	Range       models.DateRange
	GeneratedAt time.Time
	Settings    models.AppSettings
}

// ParseKinds parses a --kind value. "all" expands to AllKinds.
func ParseKinds(s string) ([]Kind, error) {
	switch k := strings.ToLower(strings.TrimSpace(s)); k {
	case KindAll:
		return append([]Kind(nil), AllKinds...), nil
	case string(KindCSV), string(KindXLSX), string(KindPDF):
		return []Kind{Kind(k)}, nil
	default:
		return nil, &ledgererror.ValidationError{Field: "kind", Value: s, Reason: "must be csv, xlsx, pdf or all"}
	}
}

// FileName returns reporte_biztrack_<YYYY-MM-DD>.<ext> for the UTC day of now.
func FileName(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s%s.%s", FilePrefix, dateutils.ToISODate(now), kind)
}

// row is one transaction flattened to display strings.
type row struct {
	Date        string `csv:"Fecha"`
	Type        string `csv:"Tipo"`
	Category    string `csv:"Categoría"`
	Description string `csv:"Descripción"`
	Amount      string `csv:"Monto"`
	Currency    string `csv:"Moneda"`
	Rate        string `csv:"Tipo de Cambio"`
	Total       string `csv:"Total (Moneda Principal)"`
}

func toRows(txs []models.Transaction, settings models.AppSettings) []row {
	rows := make([]row, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, row{
			Date:        t.DayKey(),
			Type:        t.Type.Label(),
			Category:    t.Category,
			Description: t.Description,
			Amount:      currencyutils.FormatAmount(t.Amount, ""),
			Currency:    settings.CurrencyLabel(t.Currency),
			Rate:        currencyutils.FormatRate(exchangeRate(t)),
			Total:       currencyutils.FormatAmount(aggregate.Value(t), ""),
		})
	}
	return rows
}

// cells returns the row values in column order.
func (r row) cells() []string {
	return []string{r.Date, r.Type, r.Category, r.Description, r.Amount, r.Currency, r.Rate, r.Total}
}

// exchangeRate is the rate shown in reports: always 1 for the main currency, whatever
// was stored.
func exchangeRate(t models.Transaction) decimal.Decimal {
	if t.Currency == models.CurrencyMain {
		return decimal.NewFromInt(1)
	}
	return t.ExchangeRate
}
