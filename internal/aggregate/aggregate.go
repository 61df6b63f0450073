// Package aggregate derives summaries from a set of transactions. Every function is pure and
// reports money in the main currency.
package aggregate

import (
	"sort"

	"fjacquet/biztrack/internal/models"

	"github.com/shopspring/decimal"
)

// Summary holds the totals over a set of transactions.
type Summary struct {
	Income  decimal.Decimal `json:"totalIncome" yaml:"total_income"`
	Expense decimal.Decimal `json:"totalExpense" yaml:"total_expense"`
	Balance decimal.Decimal `json:"balance" yaml:"balance"`
}

// CategoryTotal is the summed expense value of one category.
type CategoryTotal struct {
	Name  string          `json:"name" yaml:"name"`
	Value decimal.Decimal `json:"value" yaml:"value"`
}

// DailyPoint holds the income and expense of one UTC day.
type DailyPoint struct {
	Date    string          `json:"date" yaml:"date"`
	Income  decimal.Decimal `json:"income" yaml:"income"`
	Expense decimal.Decimal `json:"expense" yaml:"expense"`
}

// Value normalizes a transaction amount into the main currency.
func Value(t models.Transaction) decimal.Decimal {
	if t.Currency == models.CurrencyMain {
		return t.Amount
	}
	return t.Amount.Mul(t.ExchangeRate)
}

// Totals sums income and expense values. An empty input yields zeros.
func Totals(txs []models.Transaction) Summary {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case models.TypeIncome:
			income = income.Add(Value(t))
		case models.TypeExpense:
			expense = expense.Add(Value(t))
		}
	}
	return Summary{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// CategoryBreakdown groups EXPENSE values by exact category name, rounds each sum to two
// places and sorts descending. Equal values keep first-encounter order.
func CategoryBreakdown(txs []models.Transaction) []CategoryTotal {
	index := make(map[string]int)
	out := []CategoryTotal{}
	for _, t := range txs {
		if t.Type != models.TypeExpense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTotal{Name: t.Category, Value: decimal.Zero})
		}
		out[i].Value = out[i].Value.Add(Value(t))
	}

	for i := range out {
		out[i].Value = out[i].Value.Round(2)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}

// DailyTimeline groups all transactions by UTC day, ascending by date.
func DailyTimeline(txs []models.Transaction) []DailyPoint {
	byDay := make(map[string]*DailyPoint)
	for _, t := range txs {
		key := t.DayKey()
		p, ok := byDay[key]
		if !ok {
			p = &DailyPoint{Date: key, Income: decimal.Zero, Expense: decimal.Zero}
			byDay[key] = p
		}
		if t.IsIncome() {
			p.Income = p.Income.Add(Value(t))
		} else {
			p.Expense = p.Expense.Add(Value(t))
		}
	}

	out := make([]DailyPoint, 0, len(byDay))
	for _, p := range byDay {
		p.Income = p.Income.Round(2)
		p.Expense = p.Expense.Round(2)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// FilterByRange keeps transactions whose UTC day lies within r, bounds included.
// Input order is preserved.
func FilterByRange(txs []models.Transaction, r models.DateRange) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if r.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// SortByDateDesc returns a copy ordered newest first; same-day records keep storage order.
func SortByDateDesc(txs []models.Transaction) []models.Transaction {
	out := append([]models.Transaction(nil), txs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
