package core

import (
	"fmt"
	"time"
)

// MaxRowsPerFile is the importer's per-file limit on data rows.
const MaxRowsPerFile = 248

// ChunkTable splits a table into files of at most maxRows data rows, each
// starting with the original header. A table that fits is returned as a
// single file. maxRows <= 0 uses MaxRowsPerFile.
func ChunkTable(t Table, maxRows int) []Table {
	if len(t) == 0 {
		return nil
	}
	if maxRows <= 0 {
		maxRows = MaxRowsPerFile
	}

	header := t[0]
	rows := t[1:]
	if len(rows) <= maxRows {
		return []Table{t}
	}

	files := make([]Table, 0, (len(rows)+maxRows-1)/maxRows)
	for start := 0; start < len(rows); start += maxRows {
		end := min(start+maxRows, len(rows))
		chunk := make(Table, 0, end-start+1)
		chunk = append(chunk, header)
		chunk = append(chunk, rows[start:end]...)
		files = append(files, chunk)
	}
	return files
}

// FileName returns the download name for part (1-based) of total files:
// <prefix>_<unix millis>.csv, or <prefix>_<unix millis>_part<n>.csv when
// the output was split.
func FileName(prefix string, ts time.Time, part, total int) string {
	if total > 1 {
		return fmt.Sprintf("%s_%d_part%d.csv", prefix, ts.UnixMilli(), part)
	}
	return fmt.Sprintf("%s_%d.csv", prefix, ts.UnixMilli())
}
