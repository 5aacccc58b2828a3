package core

import "time"

// OutputFile is one downloadable chunk of a generated table.
type OutputFile struct {
	Name  string // Download name: "devops_tasks_1700000000000_part2.csv"
	Part  int    // 1-based position
	Rows  int    // Data rows, header excluded
	Table Table
	CSV   string
}

// Output is a generated table ready for preview and export.
type Output struct {
	Template    string
	Table       Table
	Files       []OutputFile
	Summary     Summary
	GeneratedAt time.Time
}

// BuildOutput chunks table into files of at most maxRows data rows and
// encodes each one. All parts share the timestamp of now.
func BuildOutput(info TemplateInfo, table Table, maxRows int, now time.Time) Output {
	chunks := ChunkTable(table, maxRows)
	files := make([]OutputFile, len(chunks))
	for i, chunk := range chunks {
		files[i] = OutputFile{
			Name:  FileName(info.FilePrefix, now, i+1, len(chunks)),
			Part:  i + 1,
			Rows:  len(chunk.DataRows()),
			Table: chunk,
			CSV:   EncodeCSV(chunk),
		}
	}
	return Output{
		Template:    info.Key,
		Table:       table,
		Files:       files,
		Summary:     Summarize(table, len(files)),
		GeneratedAt: now,
	}
}

// File returns the 1-based part, or ErrPartNotFound.
func (o *Output) File(part int) (OutputFile, error) {
	if part < 1 || part > len(o.Files) {
		return OutputFile{}, ErrPartNotFound
	}
	return o.Files[part-1], nil
}

// ClipboardText is the CSV of the first file. Output that was split
// needs the download path for the remaining parts.
func (o *Output) ClipboardText() string {
	if len(o.Files) == 0 {
		return ""
	}
	return o.Files[0].CSV
}
