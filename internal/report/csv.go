package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"fjacquet/biztrack/internal/models"

	"github.com/gocarina/gocsv"
)

// RenderCSV writes a header row and one row per transaction using delimiter.
func RenderCSV(txs []models.Transaction, meta Meta, delimiter rune) ([]byte, error) {
	if delimiter == 0 {
		delimiter = ','
	}

	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(toRows(txs, meta.Settings), gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return nil, fmt.Errorf("error writing CSV data: %w", err)
	}
	return buf.Bytes(), nil
}
