package core

// csv.go serializes generated tables for the issue tracker's CSV importer.
//
// The importer expects a narrower dialect than encoding/csv writes: a cell is
// quoted only when it contains a comma, a double quote or a newline, rows are
// joined with "\n", and there is no newline after the last row.

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// EncodeCSV renders rows as CSV text. Short rows are padded with empty cells
// to the width of the widest row.
func EncodeCSV(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j := 0; j < width; j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			if j < len(row) {
				b.WriteString(quoteCell(row[j]))
			}
		}
	}
	return b.String()
}

// quoteCell wraps a cell in double quotes when the importer needs it.
func quoteCell(cell string) string {
	if !strings.ContainsAny(cell, ",\"\n") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// DecodeCSV parses CSV text produced by EncodeCSV back into rows.
func DecodeCSV(text string) ([]Row, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row(rec)
	}
	return rows, nil
}
