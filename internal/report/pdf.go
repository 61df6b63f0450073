package report

import (
	"bytes"
	"fmt"

	"fjacquet/biztrack/internal/aggregate"
	"fjacquet/biztrack/internal/dateutils"
	"fjacquet/biztrack/internal/models"

	"github.com/go-pdf/fpdf"
)

// PDFTitle heads every PDF report.
const PDFTitle = "Reporte Financiero - BizTrack"

// Landscape A4 leaves 277mm between the default margins.
var pdfWidths = []float64{24, 18, 36, 62, 26, 18, 30, 63}

// pdfHeader returns the lines printed above the table: range, generation time and
// the totals in the main currency.
func pdfHeader(txs []models.Transaction, meta Meta) ([]string, []string, error) {
	mainCurrency := meta.Settings.CurrencyMain
	totals := aggregate.Totals(txs)
	income := models.NewMoney(totals.Income, mainCurrency)
	expense := models.NewMoney(totals.Expense, mainCurrency)
	balance, err := income.Sub(expense)
	if err != nil {
		return nil, nil, err
	}

	info := []string{
		fmt.Sprintf("Rango: %s al %s", meta.Range.StartKey(), meta.Range.EndKey()),
		"Generado: " + dateutils.FormatTimestamp(meta.GeneratedAt),
	}
	summary := []string{
		"Total Ingresos: " + income.String(),
		"Total Egresos: " + expense.String(),
		"Balance Neto: " + balance.String(),
	}
	return info, summary, nil
}

// RenderPDF writes the summary header followed by a grid of the transactions with the
// same columns as the CSV and XLSX reports.
func RenderPDF(txs []models.Transaction, meta Meta) ([]byte, error) {
	info, summary, err := pdfHeader(txs, meta)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(meta.GeneratedAt)
	pdf.SetTitle(PDFTitle, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(PDFTitle), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range info {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	for _, line := range summary {
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range columns {
		pdf.CellFormat(pdfWidths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range toRows(txs, meta.Settings) {
		for i, c := range r.cells() {
			align := "L"
			// Monto, Tipo de Cambio, Total
			if i == 4 || i == 6 || i == 7 {
				align = "R"
			}
			pdf.CellFormat(pdfWidths[i], 6, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
