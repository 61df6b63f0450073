package models

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

// Transaction types
const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// CurrencySlot references one of the two currencies configured in AppSettings.
type CurrencySlot string

// Currency slots
const (
	CurrencyMain      CurrencySlot = "MAIN"
	CurrencySecondary CurrencySlot = "SECONDARY"
)

// Persisted keys
const (
	KeySettings     = "settings"
	KeyTransactions = "transactions"
)

// Default currency codes
const (
	DefaultCurrencyMain      = "USD"
	DefaultCurrencySecondary = "EUR"
)

// DefaultPhotoMaxBytes is the largest receipt image accepted (2 MiB).
const DefaultPhotoMaxBytes int64 = 2 * 1024 * 1024

// File permissions
const (
	PermissionDataFile   = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)

// Label returns the human-readable label used in reports.
func (t TransactionType) Label() string {
	if t == TypeIncome {
		return "Ingreso"
	}
	return "Egreso"
}

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// IsValid reports whether c is one of the two currency slots.
func (c CurrencySlot) IsValid() bool {
	return c == CurrencyMain || c == CurrencySecondary
}
