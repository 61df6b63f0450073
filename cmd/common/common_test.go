package common

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/models"
	"fjacquet/biztrack/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

func str(s string) *string { return &s }

func dualSettings() models.AppSettings {
	s := models.DefaultSettings()
	s.EnableDualCurrency = true
	return s
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		from, to  string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{"defaults", "", "", "2024-03-01", "2024-03-15", false},
		{"from only", "2024-01-10", "", "2024-01-10", "2024-03-15", false},
		{"both", "2024-02-01", "2024-02-29", "2024-02-01", "2024-02-29", false},
		{"start after end", "2024-03-20", "2024-03-01", "", "", true},
		{"bad date", "01/02/2024", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.from, tt.to, testNow)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ledgererror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.StartKey())
			assert.Equal(t, tt.wantEnd, r.EndKey())
		})
	}
}

func TestBuildTransaction_NewDefaults(t *testing.T) {
	opts := BuildOptions{Settings: models.DefaultSettings(), Now: testNow}

	tx, err := BuildTransaction(TransactionInput{Type: str("expense"), Amount: str("42.50")}, nil, opts)
	require.NoError(t, err)

	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, models.TypeExpense, tx.Type)
	assert.True(t, decimal.RequireFromString("42.5").Equal(tx.Amount))
	assert.Equal(t, models.CurrencyMain, tx.Currency)
	assert.True(t, tx.ExchangeRate.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "Inventario", tx.Category)
	assert.Equal(t, "2024-03-15", tx.DayKey())
}

func TestBuildTransaction_NewErrors(t *testing.T) {
	tests := []struct {
		name     string
		in       TransactionInput
		settings models.AppSettings
		field    string
	}{
		{"missing type", TransactionInput{Amount: str("1")}, models.DefaultSettings(), "type"},
		{"missing amount", TransactionInput{Type: str("income")}, models.DefaultSettings(), "amount"},
		{"negative amount", TransactionInput{Type: str("income"), Amount: str("-5")}, models.DefaultSettings(), "amount"},
		{"secondary while disabled", TransactionInput{Type: str("income"), Amount: str("5"), Currency: str("secondary"), Rate: str("1.1")}, models.DefaultSettings(), "currency"},
		{"secondary without rate", TransactionInput{Type: str("income"), Amount: str("5"), Currency: str("secondary")}, dualSettings(), "rate"},
		{"bad date", TransactionInput{Type: str("income"), Amount: str("5"), Date: str("yesterday")}, models.DefaultSettings(), "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTransaction(tt.in, nil, BuildOptions{Settings: tt.settings, Now: testNow})
			require.Error(t, err)
			var ve *ledgererror.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestBuildTransaction_Secondary(t *testing.T) {
	in := TransactionInput{
		Type:     str("ingreso"),
		Amount:   str("100"),
		Currency: str("secondary"),
		Rate:     str("1.08"),
		Date:     str("2024-03-02"),
		Category: str(" Ventas "),
	}
	tx, err := BuildTransaction(in, nil, BuildOptions{Settings: dualSettings(), Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, models.CurrencySecondary, tx.Currency)
	assert.True(t, decimal.RequireFromString("1.08").Equal(tx.ExchangeRate))
	assert.Equal(t, "Ventas", tx.Category)
	assert.Equal(t, "2024-03-02", tx.DayKey())
}

func TestBuildTransaction_Edit(t *testing.T) {
	opts := BuildOptions{Settings: dualSettings(), Now: testNow}
	existing, err := BuildTransaction(TransactionInput{
		Type:        str("income"),
		Amount:      str("10"),
		Category:    str("Rentas"),
		Description: str("March rent"),
		Date:        str("2024-03-01"),
	}, nil, opts)
	require.NoError(t, err)

	t.Run("keeps unset fields", func(t *testing.T) {
		tx, err := BuildTransaction(TransactionInput{Amount: str("12")}, &existing, opts)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, tx.ID)
		assert.Equal(t, "Rentas", tx.Category)
		assert.Equal(t, "March rent", tx.Description)
		assert.Equal(t, existing.Date, tx.Date)
		assert.True(t, decimal.NewFromInt(12).Equal(tx.Amount))
	})

	t.Run("type change resets category", func(t *testing.T) {
		tx, err := BuildTransaction(TransactionInput{Type: str("expense")}, &existing, opts)
		require.NoError(t, err)
		assert.Equal(t, models.TypeExpense, tx.Type)
		assert.Equal(t, "Inventario", tx.Category)
	})

	t.Run("switch to secondary needs a rate", func(t *testing.T) {
		_, err := BuildTransaction(TransactionInput{Currency: str("secondary")}, &existing, opts)
		require.Error(t, err)

		tx, err := BuildTransaction(TransactionInput{Currency: str("secondary"), Rate: str("0.5")}, &existing, opts)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("0.5").Equal(tx.ExchangeRate))

		back, err := BuildTransaction(TransactionInput{Currency: str("main")}, &tx, opts)
		require.NoError(t, err)
		assert.True(t, back.ExchangeRate.Equal(decimal.NewFromInt(1)))
	})
}

func TestBuildTransaction_Photo(t *testing.T) {
	dir := t.TempDir()
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	path := filepath.Join(dir, "receipt.png")
	require.NoError(t, os.WriteFile(path, png, 0600))

	opts := BuildOptions{Settings: models.DefaultSettings(), Now: testNow, PhotoMaxBytes: 1024}
	tx, err := BuildTransaction(TransactionInput{Type: str("expense"), Amount: str("3"), Photo: str(path)}, nil, opts)
	require.NoError(t, err)
	assert.Contains(t, tx.Photo, "data:image/png;base64,")

	cleared, err := BuildTransaction(TransactionInput{Photo: str("")}, &tx, opts)
	require.NoError(t, err)
	assert.False(t, cleared.HasPhoto())

	opts.PhotoMaxBytes = 8
	_, err = BuildTransaction(TransactionInput{Type: str("expense"), Amount: str("3"), Photo: str(path)}, nil, opts)
	assert.ErrorIs(t, err, ledgererror.ErrPhotoTooLarge)
}

func TestInputFromFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddTransactionFlags(fs)
	require.NoError(t, fs.Parse([]string{"--type", "income", "-a", "9.99", "--photo="}))

	in := InputFromFlags(fs)
	require.NotNil(t, in.Type)
	assert.Equal(t, "income", *in.Type)
	require.NotNil(t, in.Amount)
	assert.Equal(t, "9.99", *in.Amount)
	require.NotNil(t, in.Photo)
	assert.Equal(t, "", *in.Photo)
	assert.Nil(t, in.Category)
	assert.Nil(t, in.Currency)
}

func TestRender(t *testing.T) {
	settings := dualSettings()
	tx, err := models.NewTransaction(models.TransactionParams{
		Date:         testNow,
		Type:         models.TypeIncome,
		Amount:       decimal.NewFromInt(100),
		Currency:     models.CurrencySecondary,
		ExchangeRate: decimal.RequireFromString("1.5"),
		Category:     "Ventas",
	})
	require.NoError(t, err)
	views := NewTransactionViews([]models.Transaction{tx}, settings)
	require.Len(t, views, 1)
	assert.Equal(t, "EUR", views[0].Currency)
	assert.True(t, decimal.NewFromInt(150).Equal(views[0].Total))

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, validation.FormatJSON, views, nil))
		assert.Contains(t, buf.String(), `"category": "Ventas"`)
		assert.Contains(t, buf.String(), `"total": 150`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, validation.FormatYAML, views, nil))
		assert.Contains(t, buf.String(), "category: Ventas")
		assert.Contains(t, buf.String(), "has_photo: false")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, validation.FormatTable, views, func(w io.Writer) error {
			return WriteTable(w, TransactionHeaders, TransactionRows(views, settings.CurrencyMain))
		})
		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "Fecha")
		assert.Contains(t, out, "Ingreso")
		assert.Contains(t, out, "100.00 EUR")
		assert.Contains(t, out, "150.00 USD")
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, "xml", views, nil)
		assert.True(t, ledgererror.IsValidation(err))
	})
}
