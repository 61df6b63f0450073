package common

import (
	"fjacquet/biztrack/internal/aggregate"
	"fjacquet/biztrack/internal/currencyutils"
	"fjacquet/biztrack/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionView is the list representation of a transaction: currency codes resolved,
// main-currency total computed, photo reduced to a flag.
type TransactionView struct {
	ID           string          `json:"id" yaml:"id"`
	Date         string          `json:"date" yaml:"date"`
	Type         string          `json:"type" yaml:"type"`
	Category     string          `json:"category" yaml:"category"`
	Description  string          `json:"description,omitempty" yaml:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount" yaml:"amount"`
	Currency     string          `json:"currency" yaml:"currency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate" yaml:"exchange_rate"`
	Total        decimal.Decimal `json:"total" yaml:"total"`
	HasPhoto     bool            `json:"hasPhoto" yaml:"has_photo"`
}

// NewTransactionViews converts transactions for display, keeping their order.
func NewTransactionViews(txs []models.Transaction, settings models.AppSettings) []TransactionView {
	views := make([]TransactionView, 0, len(txs))
	for _, t := range txs {
		views = append(views, TransactionView{
			ID:           t.ID,
			Date:         t.DayKey(),
			Type:         string(t.Type),
			Category:     t.Category,
			Description:  t.Description,
			Amount:       t.Amount,
			Currency:     settings.CurrencyLabel(t.Currency),
			ExchangeRate: t.ExchangeRate,
			Total:        aggregate.Value(t).Round(2),
			HasPhoto:     t.HasPhoto(),
		})
	}
	return views
}

// TransactionRows formats views for WriteTable. Rate and main total are only shown for
// secondary-currency rows.
func TransactionRows(views []TransactionView, mainCurrency string) [][]string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rate, total := "", ""
		if v.Currency != mainCurrency {
			rate = currencyutils.FormatRate(v.ExchangeRate)
			total = currencyutils.FormatAmount(v.Total, mainCurrency)
		}
		photo := ""
		if v.HasPhoto {
			photo = "yes"
		}
		rows = append(rows, []string{
			v.Date,
			typeLabel(v.Type),
			v.Category,
			v.Description,
			currencyutils.FormatAmount(v.Amount, v.Currency),
			rate,
			total,
			photo,
			v.ID,
		})
	}
	return rows
}

// TransactionHeaders are the column titles matching TransactionRows.
var TransactionHeaders = []string{"Fecha", "Tipo", "Categoría", "Descripción", "Monto", "Tasa", "Total", "Foto", "ID"}

func typeLabel(t string) string {
	return models.TransactionType(t).Label()
}

// SummaryView is the summary command output.
type SummaryView struct {
	Range      string                    `json:"range" yaml:"range"`
	Currency   string                    `json:"currency" yaml:"currency"`
	Count      int                       `json:"count" yaml:"count"`
	Totals     aggregate.Summary         `json:"totals" yaml:"totals"`
	Categories []aggregate.CategoryTotal `json:"categories" yaml:"categories"`
	Timeline   []aggregate.DailyPoint    `json:"timeline" yaml:"timeline"`
}

// NewSummaryView computes every aggregate over txs.
func NewSummaryView(txs []models.Transaction, r models.DateRange, settings models.AppSettings) SummaryView {
	return SummaryView{
		Range:      r.String(),
		Currency:   settings.CurrencyMain,
		Count:      len(txs),
		Totals:     aggregate.Totals(txs),
		Categories: aggregate.CategoryBreakdown(txs),
		Timeline:   aggregate.DailyTimeline(txs),
	}
}
