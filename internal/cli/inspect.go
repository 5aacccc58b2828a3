package cli

import (
	"fmt"

	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/spf13/cobra"
)

func newInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.csv>",
		Short: "Check a generated CSV against the importer's limits",
		Long: `Read an import CSV, print its issue counts and fail when it holds more
data rows than one import accepts. Use - to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.readSource(args[0])
			if err != nil {
				return err
			}
			rows, err := core.DecodeCSV(text)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("%s has no header: %w", args[0], core.ErrEmptyInput)
			}

			table := core.Table(rows)
			printSummary(cmd, core.Summarize(table, 1))

			limit := app.Export.MaxRowsPerFile
			if limit <= 0 {
				limit = core.MaxRowsPerFile
			}
			if n := len(table.DataRows()); n > limit {
				return fmt.Errorf("%d data rows exceed the per-file limit of %d", n, limit)
			}
			return nil
		},
	}
}
