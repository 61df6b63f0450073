package report

import (
	"fmt"

	"fjacquet/biztrack/internal/aggregate"
	"fjacquet/biztrack/internal/models"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the transaction rows.
const SheetName = "Transacciones"

var columnWidths = []float64{12, 10, 20, 32, 12, 10, 14, 24}

// RenderXLSX builds a workbook with a single "Transacciones" sheet. Amount, rate and total
// cells are numeric.
func RenderXLSX(txs []models.Transaction, meta Meta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for idx, t := range txs {
		r := idx + 2
		values := []interface{}{
			t.DayKey(),
			t.Type.Label(),
			t.Category,
			t.Description,
			t.Amount.InexactFloat64(),
			meta.Settings.CurrencyLabel(t.Currency),
			exchangeRate(t).InexactFloat64(),
			aggregate.Value(t).Round(2).InexactFloat64(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r, err)
		}
		for _, col := range []string{"E", "H"} {
			if err := f.SetCellStyle(SheetName, fmt.Sprintf("%s%d", col, r), fmt.Sprintf("%s%d", col, r), moneyStyle); err != nil {
				return nil, fmt.Errorf("style row %d: %w", r, err)
			}
		}
	}

	for i, w := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
