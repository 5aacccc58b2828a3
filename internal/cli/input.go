package cli

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/xuri/excelize/v2"
)

// readSource reads a file, or stdin when path is "-".
func (a *App) readSource(path string) (string, error) {
	if path == "-" {
		return core.ReadInput(a.Stdin, 0)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return core.ReadInput(f, 0)
}

// readSheet returns every row of one worksheet. An empty sheet name picks
// the workbook's active sheet.
func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
