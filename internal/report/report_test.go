package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/logging"
	"fjacquet/biztrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:           "1",
			Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Type:         models.TypeIncome,
			Amount:       decimal.NewFromInt(100),
			Currency:     models.CurrencyMain,
			ExchangeRate: decimal.NewFromInt(1),
			Category:     "Ventas",
			Description:  "mostrador",
		},
		{
			ID:           "2",
			Date:         time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			Type:         models.TypeExpense,
			Amount:       decimal.NewFromInt(30),
			Currency:     models.CurrencySecondary,
			ExchangeRate: decimal.NewFromInt(2),
			Category:     "Alquiler",
			Description:  "local",
		},
	}
}

func sampleMeta() Meta {
	settings := models.DefaultSettings()
	settings.EnableDualCurrency = true
	return Meta{
		Range:       models.DateRange{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		GeneratedAt: time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC),
		Settings:    settings,
	}
}

type fakeDeliverer struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (f *fakeDeliverer) Deliver(_ context.Context, name string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
	return "/out/" + name, nil
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		input    string
		expected []Kind
		hasError bool
	}{
		{"csv", []Kind{KindCSV}, false},
		{"XLSX", []Kind{KindXLSX}, false},
		{" pdf ", []Kind{KindPDF}, false},
		{"all", []Kind{KindCSV, KindXLSX, KindPDF}, false},
		{"docx", nil, true},
		{"", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			kinds, err := ParseKinds(tc.input)
			if tc.hasError {
				assert.True(t, ledgererror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kinds)
		})
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 4, 2, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "reporte_biztrack_2024-04-02.csv", FileName(KindCSV, now))
	assert.Equal(t, "reporte_biztrack_2024-04-02.xlsx", FileName(KindXLSX, now))
	assert.Equal(t, "reporte_biztrack_2024-04-02.pdf", FileName(KindPDF, now))
}

func TestRenderCSV(t *testing.T) {
	data, err := RenderCSV(sampleTransactions(), sampleMeta(), ',')
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Fecha,Tipo,Categoría,Descripción,Monto,Moneda,Tipo de Cambio,Total (Moneda Principal)", lines[0])
	assert.Equal(t, "2024-03-01,Ingreso,Ventas,mostrador,100.00,USD,1,100.00", lines[1])
	assert.Equal(t, "2024-03-10,Egreso,Alquiler,local,30.00,EUR,2,60.00", lines[2])
}

func TestRenderCSV_CustomDelimiter(t *testing.T) {
	data, err := RenderCSV(sampleTransactions(), sampleMeta(), ';')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Fecha;Tipo;Categoría;"))
}

func TestRenderXLSX(t *testing.T) {
	data, err := RenderXLSX(sampleTransactions(), sampleMeta())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, columns, rows[0])
	assert.Equal(t, "Egreso", rows[2][1])
	assert.Equal(t, "EUR", rows[2][5])

	total, err := f.GetCellValue(SheetName, "H3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "60", total)
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(sampleTransactions(), sampleMeta())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Greater(t, len(data), 500)
}

func TestPDFHeader(t *testing.T) {
	info, summary, err := pdfHeader(sampleTransactions(), sampleMeta())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Rango: 2024-03-01 al 2024-03-31",
		"Generado: 2024-04-02 09:30",
	}, info)
	assert.Equal(t, []string{
		"Total Ingresos: 100.00 USD",
		"Total Egresos: 60.00 USD",
		"Balance Neto: 40.00 USD",
	}, summary)
}

func TestPDFTableMatchesSharedColumns(t *testing.T) {
	require.Len(t, pdfWidths, len(columns))

	rows := toRows(sampleTransactions(), sampleMeta().Settings)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-03-01", "Ingreso", "Ventas", "mostrador", "100.00", "USD", "1", "100.00"}, rows[0].cells())
	assert.Equal(t, []string{"2024-03-10", "Egreso", "Alquiler", "local", "30.00", "EUR", "2", "60.00"}, rows[1].cells())
}

func TestMainCurrencyRateAlwaysOne(t *testing.T) {
	txs := sampleTransactions()[:1]
	txs[0].ExchangeRate = decimal.NewFromInt(3)
	meta := sampleMeta()

	rows := toRows(txs, meta.Settings)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].Rate)
	assert.Equal(t, "100.00", rows[0].Total)

	data, err := RenderCSV(txs, meta, ',')
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-03-01,Ingreso,Ventas,mostrador,100.00,USD,1,100.00")

	data, err = RenderXLSX(txs, meta)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rate, err := f.GetCellValue(SheetName, "G2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1", rate)
}

func TestExporter_EmptySetRejected(t *testing.T) {
	deliverer := &fakeDeliverer{}
	e := NewExporter(logging.NewMockLogger(), ',', deliverer)

	locations, err := e.Export(context.Background(), AllKinds, nil, sampleMeta())
	assert.ErrorIs(t, err, ledgererror.ErrNothingToExport)
	assert.Empty(t, locations)
	assert.Empty(t, deliverer.names, "no artifact is produced")
}

func TestExporter_ExportAll(t *testing.T) {
	deliverer := &fakeDeliverer{}
	logger := logging.NewMockLogger()
	e := NewExporter(logger, ',', deliverer)

	locations, err := e.Export(context.Background(), AllKinds, sampleTransactions(), sampleMeta())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/out/reporte_biztrack_2024-04-02.csv",
		"/out/reporte_biztrack_2024-04-02.xlsx",
		"/out/reporte_biztrack_2024-04-02.pdf",
	}, locations)
	assert.True(t, logger.HasEntry("INFO", "Exported report"))
}

func TestExporter_DeliveryFailure(t *testing.T) {
	deliverer := &fakeDeliverer{err: errors.New("no space left")}
	e := NewExporter(nil, ',', deliverer)

	_, err := e.Export(context.Background(), []Kind{KindCSV}, sampleTransactions(), sampleMeta())
	var exportErr *ledgererror.ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "csv", exportErr.Kind)
	assert.Equal(t, "reporte_biztrack_2024-04-02.csv", exportErr.Path)
}

func TestExporter_RenderUnknownKind(t *testing.T) {
	e := NewExporter(nil, ',', &fakeDeliverer{})

	_, err := e.Render(context.Background(), []Kind{"odt"}, sampleTransactions(), sampleMeta())
	var exportErr *ledgererror.ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "odt", exportErr.Kind)
}
