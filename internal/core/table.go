package core

// table.go parses pasted spreadsheet text into records.
//
// Pastes from Excel and Google Sheets are tab-delimited, but people also paste
// comma- or semicolon-separated text. The delimiter is picked once from the
// header line and applied to every following line.
//
// A cell that contains line breaks arrives as several physical lines. The
// first data line that contains any delimiter fixes the row signature (its
// delimiter count); a later line with at least that many delimiters starts a
// new logical row, anything shorter is a continuation of the pending row.

import (
	"fmt"
	"log/slog"
	"strings"
)

// Delimiter is the cell separator chosen for a paste.
type Delimiter rune

const (
	DelimNone      Delimiter = 0
	DelimTab       Delimiter = '\t'
	DelimComma     Delimiter = ','
	DelimSemicolon Delimiter = ';'
)

// String returns a readable delimiter name.
func (d Delimiter) String() string {
	switch d {
	case DelimTab:
		return "tab"
	case DelimComma:
		return "comma"
	case DelimSemicolon:
		return "semicolon"
	default:
		return "none"
	}
}

// Split splits a line into cells. DelimNone keeps the line as one cell.
func (d Delimiter) Split(line string) []string {
	if d == DelimNone {
		return []string{line}
	}
	return strings.Split(line, string(d))
}

// Count returns the number of delimiters in line.
func (d Delimiter) Count(line string) int {
	if d == DelimNone {
		return 0
	}
	return strings.Count(line, string(d))
}

// DetectDelimiter prefers tab, then comma, then semicolon.
func DetectDelimiter(line string) Delimiter {
	switch {
	case strings.ContainsRune(line, '\t'):
		return DelimTab
	case strings.ContainsRune(line, ','):
		return DelimComma
	case strings.ContainsRune(line, ';'):
		return DelimSemicolon
	default:
		return DelimNone
	}
}

// SplitLines splits text on line breaks and drops whitespace-only lines.
func SplitLines(text string) []string {
	raw := strings.Split(lineEndings.Replace(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// stripQuotes removes one leading and one trailing double quote.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// CleanCell trims whitespace and surrounding quotes from a cell.
func CleanCell(s string) string {
	return stripQuotes(strings.TrimSpace(s))
}

// cleanCellFor applies role-specific cleanup. Descriptions keep their
// whitespace and embedded newlines; only the surrounding quotes go.
func cleanCellFor(role Role, s string) string {
	if role == RoleDescription {
		return stripQuotes(s)
	}
	return CleanCell(s)
}

// rowSignature returns the delimiter count that marks the start of a new
// logical row: the count of the first data line that has any delimiter, or
// the header's cell count minus one when no data line does.
func rowSignature(d Delimiter, header []string, data []string) int {
	for _, line := range data {
		if n := d.Count(line); n > 0 {
			return n
		}
	}
	return len(header) - 1
}

// joinContinuations folds physical lines into logical rows.
func joinContinuations(d Delimiter, lines []string, signature int) []string {
	var (
		rows    []string
		pending string
		started bool
	)
	for _, line := range lines {
		if !started {
			pending, started = line, true
			continue
		}
		if d.Count(line) >= signature {
			rows = append(rows, pending)
			pending = line
			continue
		}
		pending += "\n" + line
	}
	if started {
		rows = append(rows, pending)
	}
	return rows
}

// ParseRawTable splits text into a header and data rows without resolving
// columns. Cells are returned as they appear between delimiters.
func ParseRawTable(text string, multiLine bool) (RawTable, Delimiter, int) {
	lines := SplitLines(text)
	if len(lines) == 0 {
		return nil, DelimNone, 0
	}

	delim := DetectDelimiter(lines[0])
	header := delim.Split(lines[0])
	data := lines[1:]

	signature := 0
	if multiLine {
		signature = rowSignature(delim, header, data)
		data = joinContinuations(delim, data, signature)
	}

	table := make(RawTable, 0, len(data)+1)
	table = append(table, header)
	for _, line := range data {
		table = append(table, delim.Split(line))
	}
	return table, delim, signature
}

// ParseTable turns a data paste into records for the given roles.
//
// It fails with ErrEmptyInput when there is no header plus data row, with a
// *MissingColumnsError when a role cannot be resolved, and with ErrEmptyInput
// when every row was dropped. Rows too short to hold every resolved column
// are dropped and counted in the report.
func ParseTable(text string, roles []RoleSpec, multiLine bool) ([]Record, ParseReport, error) {
	var report ParseReport

	lines := SplitLines(text)
	report.Lines = len(lines)
	if len(lines) < 2 {
		return nil, report, fmt.Errorf("need a header row and at least one data row: %w", ErrEmptyInput)
	}

	raw, delim, signature := ParseRawTable(text, multiLine)
	report.Delimiter = delim
	report.Signature = signature

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = CleanCell(h)
	}
	report.Header = header

	cols, err := ResolveColumns(header, roles)
	if err != nil {
		return nil, report, err
	}
	report.Columns = cols

	records, dropped := buildRecords(raw[1:], cols, roles)
	report.Rows = len(records)
	report.Dropped = dropped

	if len(records) == 0 {
		return nil, report, fmt.Errorf("no valid data rows: %w", ErrEmptyInput)
	}
	return records, report, nil
}

// FromRows builds records from rows that are already split into cells, such
// as a worksheet read from an .xlsx file. The first row is the header.
func FromRows(rows [][]string, roles []RoleSpec) ([]Record, ParseReport, error) {
	var report ParseReport

	nonEmpty := make([][]string, 0, len(rows))
	for _, row := range rows {
		if !isEmptyRow(row) {
			nonEmpty = append(nonEmpty, row)
		}
	}
	report.Lines = len(nonEmpty)
	if len(nonEmpty) < 2 {
		return nil, report, fmt.Errorf("need a header row and at least one data row: %w", ErrEmptyInput)
	}

	header := make([]string, len(nonEmpty[0]))
	for i, h := range nonEmpty[0] {
		header[i] = CleanCell(h)
	}
	report.Header = header

	cols, err := ResolveColumns(header, roles)
	if err != nil {
		return nil, report, err
	}
	report.Columns = cols

	records, dropped := buildRecords(nonEmpty[1:], cols, roles)
	report.Rows = len(records)
	report.Dropped = dropped

	if len(records) == 0 {
		return nil, report, fmt.Errorf("no valid data rows: %w", ErrEmptyInput)
	}
	return records, report, nil
}

// buildRecords maps rows through cols, dropping rows that are too short.
func buildRecords(rows [][]string, cols ColumnMap, roles []RoleSpec) ([]Record, int) {
	maxIdx := cols.MaxIndex()
	records := make([]Record, 0, len(rows))
	dropped := 0

	for i, cells := range rows {
		if err := checkRowLength(cells, maxIdx); err != nil {
			dropped++
			slog.Debug("dropping row", "row", i+1, "cells", len(cells), "error", err)
			continue
		}
		rec := make(Record, len(roles))
		for _, spec := range roles {
			rec[spec.Role] = cleanCellFor(spec.Role, cells[cols[spec.Role]])
		}
		records = append(records, rec)
	}
	return records, dropped
}

// checkRowLength reports ErrRowTooShort when cells cannot hold index maxIdx.
func checkRowLength(cells []string, maxIdx int) error {
	if len(cells) <= maxIdx {
		return fmt.Errorf("%d cells, need %d: %w", len(cells), maxIdx+1, ErrRowTooShort)
	}
	return nil
}

// isEmptyRow returns true if every cell is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
