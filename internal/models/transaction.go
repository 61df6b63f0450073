// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"fjacquet/biztrack/internal/ledgererror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts and rates are stored as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayoutISO is the zero-padded day format used for keys and range comparisons.
const DateLayoutISO = "2006-01-02"

// Transaction is a single income or expense event.
type Transaction struct {
	ID           string          `json:"id" yaml:"id"`
	Date         time.Time       `json:"date" yaml:"date"`
	Type         TransactionType `json:"type" yaml:"type"`
	Amount       decimal.Decimal `json:"amount" yaml:"amount"`
	Currency     CurrencySlot    `json:"currency" yaml:"currency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate" yaml:"exchange_rate"`
	Category     string          `json:"category" yaml:"category"`
	Description  string          `json:"description" yaml:"description"`
	Photo        string          `json:"photo,omitempty" yaml:"-"`
}

// TransactionParams carries the user-supplied fields for NewTransaction.
type TransactionParams struct {
	// ID is kept when editing an existing record; a new UUID is generated when empty.
	ID           string
	Date         time.Time
	Type         TransactionType
	Amount       decimal.Decimal
	Currency     CurrencySlot
	ExchangeRate decimal.Decimal
	Category     string
	Description  string
	Photo        string
}

// NewTransaction builds a validated Transaction. A MAIN-currency transaction always
// gets an exchange rate of exactly 1 regardless of what was supplied.
func NewTransaction(p TransactionParams) (Transaction, error) {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	currency := p.Currency
	if currency == "" {
		currency = CurrencyMain
	}
	rate := p.ExchangeRate
	if currency == CurrencyMain {
		rate = decimal.NewFromInt(1)
	}

	t := Transaction{
		ID:           id,
		Date:         p.Date,
		Type:         p.Type,
		Amount:       p.Amount,
		Currency:     currency,
		ExchangeRate: rate,
		Category:     strings.TrimSpace(p.Category),
		Description:  strings.TrimSpace(p.Description),
		Photo:        p.Photo,
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Validate checks the record invariants. Category is deliberately not checked
// against the configured lists.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return &ledgererror.ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if t.Date.IsZero() {
		return &ledgererror.ValidationError{Field: "date", Reason: "must be set"}
	}
	if !t.Type.IsValid() {
		return &ledgererror.ValidationError{Field: "type", Value: string(t.Type), Reason: "must be INCOME or EXPENSE"}
	}
	if !t.Currency.IsValid() {
		return &ledgererror.ValidationError{Field: "currency", Value: string(t.Currency), Reason: "must be MAIN or SECONDARY"}
	}
	if t.Amount.IsNegative() {
		return &ledgererror.ValidationError{Field: "amount", Value: t.Amount.String(), Reason: "must not be negative"}
	}
	switch t.Currency {
	case CurrencyMain:
		if !t.ExchangeRate.Equal(decimal.NewFromInt(1)) {
			return &ledgererror.ValidationError{Field: "exchangeRate", Value: t.ExchangeRate.String(), Reason: "must be 1 for the main currency"}
		}
	case CurrencySecondary:
		if !t.ExchangeRate.IsPositive() {
			return &ledgererror.ValidationError{Field: "exchangeRate", Value: t.ExchangeRate.String(), Reason: "must be positive"}
		}
	}
	return nil
}

// DayKey returns the UTC date portion as YYYY-MM-DD.
func (t Transaction) DayKey() string {
	return t.Date.UTC().Format(DateLayoutISO)
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// HasPhoto reports whether a receipt image is attached.
func (t Transaction) HasPhoto() bool {
	return t.Photo != ""
}
