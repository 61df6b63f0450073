package models

import "strings"

// AppSettings is the singleton configuration persisted under the "settings" key.
type AppSettings struct {
	CurrencyMain       string   `json:"currencyMain" yaml:"currency_main"`
	CurrencySecondary  string   `json:"currencySecondary" yaml:"currency_secondary"`
	EnableDualCurrency bool     `json:"enableDualCurrency" yaml:"enable_dual_currency"`
	CategoriesIncome   []string `json:"categoriesIncome" yaml:"categories_income"`
	CategoriesExpense  []string `json:"categoriesExpense" yaml:"categories_expense"`
}

// DefaultSettings returns the settings used when nothing has been persisted yet.
func DefaultSettings() AppSettings {
	return AppSettings{
		CurrencyMain:       DefaultCurrencyMain,
		CurrencySecondary:  DefaultCurrencySecondary,
		EnableDualCurrency: false,
		CategoriesIncome:   []string{"Ventas", "Servicios", "Rentas", "Otros"},
		CategoriesExpense: []string{
			"Inventario",
			"Alquiler",
			"Salarios",
			"Servicios Públicos",
			"Marketing",
			"Mantenimiento",
			"Otros",
		},
	}
}

// Clone returns a deep copy so callers can build the replacement object without
// aliasing the category slices of the current one.
func (s AppSettings) Clone() AppSettings {
	out := s
	out.CategoriesIncome = append([]string(nil), s.CategoriesIncome...)
	out.CategoriesExpense = append([]string(nil), s.CategoriesExpense...)
	return out
}

// Categories returns the category list for a transaction type.
func (s AppSettings) Categories(t TransactionType) []string {
	if t == TypeIncome {
		return s.CategoriesIncome
	}
	return s.CategoriesExpense
}

// WithCategories returns a copy with the list for t replaced.
func (s AppSettings) WithCategories(t TransactionType, categories []string) AppSettings {
	out := s.Clone()
	if t == TypeIncome {
		out.CategoriesIncome = categories
	} else {
		out.CategoriesExpense = categories
	}
	return out
}

// HasCategory reports whether name is already in the list for t, ignoring case.
func (s AppSettings) HasCategory(t TransactionType, name string) bool {
	for _, c := range s.Categories(t) {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// DefaultCategory returns the first configured category for t, or "" if none.
func (s AppSettings) DefaultCategory(t TransactionType) string {
	cats := s.Categories(t)
	if len(cats) == 0 {
		return ""
	}
	return cats[0]
}

// CurrencyLabel returns the currency code for a slot.
func (s AppSettings) CurrencyLabel(slot CurrencySlot) string {
	if slot == CurrencySecondary {
		return s.CurrencySecondary
	}
	return s.CurrencyMain
}
