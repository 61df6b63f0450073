// Package common contains shared functionality for command handlers
package common

import (
	"strings"
	"time"

	"fjacquet/biztrack/internal/attachment"
	"fjacquet/biztrack/internal/currencyutils"
	"fjacquet/biztrack/internal/dateutils"
	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/models"
	"fjacquet/biztrack/internal/validation"

	"github.com/shopspring/decimal"
)

// TransactionInput carries the transaction flags of add and edit. A nil field was not
// given on the command line.
type TransactionInput struct {
	Type        *string
	Amount      *string
	Currency    *string
	Rate        *string
	Date        *string
	Category    *string
	Description *string
	// Photo is a path to an image; an empty string removes the attached photo.
	Photo *string
}

// BuildOptions holds the context BuildTransaction resolves defaults from.
type BuildOptions struct {
	Settings      models.AppSettings
	Now           time.Time
	PhotoMaxBytes int64
}

// BuildTransaction resolves in against existing (nil when adding) and returns the complete
// record to upsert. Edits are full replacements: fields not given keep the stored value.
func BuildTransaction(in TransactionInput, existing *models.Transaction, opts BuildOptions) (models.Transaction, error) {
	var base models.Transaction
	if existing != nil {
		base = *existing
	}

	params := models.TransactionParams{
		ID:           base.ID,
		Date:         base.Date,
		Type:         base.Type,
		Amount:       base.Amount,
		Currency:     base.Currency,
		ExchangeRate: base.ExchangeRate,
		Category:     base.Category,
		Description:  base.Description,
		Photo:        base.Photo,
	}

	if in.Type != nil {
		typ, err := validation.ParseTransactionType(*in.Type)
		if err != nil {
			return models.Transaction{}, err
		}
		if existing != nil && typ != existing.Type && in.Category == nil {
			params.Category = opts.Settings.DefaultCategory(typ)
		}
		params.Type = typ
	} else if existing == nil {
		return models.Transaction{}, &ledgererror.ValidationError{Field: "type", Reason: "is required"}
	}

	if in.Amount != nil {
		amount, err := currencyutils.ParseAmount(*in.Amount)
		if err != nil {
			return models.Transaction{}, err
		}
		params.Amount = amount
	} else if existing == nil {
		return models.Transaction{}, &ledgererror.ValidationError{Field: "amount", Reason: "is required"}
	}

	if in.Currency != nil || existing == nil {
		raw := ""
		if in.Currency != nil {
			raw = *in.Currency
		}
		slot, err := validation.ParseCurrencySlot(raw)
		if err != nil {
			return models.Transaction{}, err
		}
		if err := validation.CheckCurrencyAllowed(opts.Settings, slot); err != nil {
			return models.Transaction{}, err
		}
		params.Currency = slot
	}

	if params.Currency == models.CurrencySecondary {
		switch {
		case in.Rate != nil:
			rate, err := currencyutils.ParseRate(*in.Rate)
			if err != nil {
				return models.Transaction{}, err
			}
			params.ExchangeRate = rate
		case existing == nil || existing.Currency != models.CurrencySecondary:
			return models.Transaction{}, &ledgererror.ValidationError{Field: "rate", Reason: "is required for the secondary currency"}
		}
	} else {
		params.ExchangeRate = decimal.NewFromInt(1)
	}

	if in.Date != nil {
		date, _, err := dateutils.ParseDate(*in.Date)
		if err != nil {
			return models.Transaction{}, err
		}
		params.Date = date
	} else if existing == nil {
		params.Date = dateutils.StartOfDay(opts.Now)
	}

	if in.Category != nil {
		params.Category = strings.TrimSpace(*in.Category)
	} else if existing == nil {
		params.Category = opts.Settings.DefaultCategory(params.Type)
	}

	if in.Description != nil {
		params.Description = *in.Description
	}

	if in.Photo != nil {
		if *in.Photo == "" {
			params.Photo = ""
		} else {
			photo, err := attachment.Load(*in.Photo, opts.PhotoMaxBytes)
			if err != nil {
				return models.Transaction{}, err
			}
			params.Photo = photo
		}
	}

	return models.NewTransaction(params)
}
