// Package cli implements the issuecsv command line: the same paste-to-CSV
// pipeline as the web UI, reading from files or stdin.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/JonMunkholm/issuecsv/internal/config"
	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// App holds the command's dependencies. Tests replace the streams and the
// clipboard.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Export config.ExportConfig
	Now    func() time.Time

	// CopyText writes text to the system clipboard.
	CopyText func(text string) error
}

// NewApp wires the real streams and clipboard.
func NewApp(export config.ExportConfig) *App {
	return &App{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Export:   export,
		Now:      time.Now,
		CopyText: clipboard.WriteAll,
	}
}

func (a *App) service() *core.Service {
	return core.NewService(core.Options{
		MinPasteLength: a.Export.MinPasteLength,
		MaxRowsPerFile: a.Export.MaxRowsPerFile,
		MaxTeams:       a.Export.MaxTeams,
		MaxRows:        a.Export.MaxRows,
		Now:            a.Now,
	})
}

// NewRootCmd builds the issuecsv command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "issuecsv",
		Short: "Turn spreadsheet pastes into issue tracker import CSVs",
		Long: `issuecsv converts tab, comma or semicolon separated spreadsheet text
into CSV files the issue tracker importer accepts.

Available subcommands:
  generate  - Build import files for a template
  emails    - Print the email addresses found in a file
  templates - List the available templates
  inspect   - Check a generated CSV against the importer's limits`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(app.Stdin)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	root.AddCommand(
		newGenerateCmd(app),
		newEmailsCmd(app),
		newTemplatesCmd(app),
		newInspectCmd(app),
	)
	return root
}

// Execute runs the command tree and prints failures as user messages.
// It returns the process exit code.
func Execute(app *App, args []string) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(app.Stderr, "error:", describeError(err))
		return 1
	}
	return 0
}

// describeError shows coded messages for pipeline errors and the raw text
// for usage errors cobra reports.
func describeError(err error) string {
	if core.IsUserFacing(err) {
		return fmt.Sprintf("%s\n  %s", core.FormatUserError(err), err)
	}
	return err.Error()
}
