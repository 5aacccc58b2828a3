package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/JonMunkholm/issuecsv/internal/logging"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	data      string
	emails    string
	xlsx      string
	sheet     string
	component string
	label     string
	teams     int
	outDir    string
	copy      bool
	stdout    bool
}

func newGenerateCmd(app *App) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate <template>",
		Short: "Build import CSV files for a template",
		Long: `Parse a spreadsheet export and write the import files for a template.

Data comes from --data (a text file, or - for stdin) or from --xlsx.
Output larger than the importer's row limit is split into numbered parts.

Examples:
  issuecsv generate devops --data tasks.tsv --emails team.txt --component OPS
  pbpaste | issuecsv generate projects --data - --component WEB --label Q3 --teams 2
  issuecsv generate generic --xlsx people.xlsx --component CORE --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runGenerate(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.data, "data", "", "data paste file, or - for stdin")
	f.StringVar(&opts.emails, "emails", "", "assignee email file, or - for stdin")
	f.StringVar(&opts.xlsx, "xlsx", "", "read data from an .xlsx workbook instead of --data")
	f.StringVar(&opts.sheet, "sheet", "", "worksheet name (default: active sheet)")
	f.StringVar(&opts.component, "component", "", "component written to every row")
	f.StringVar(&opts.label, "label", "", "label appended to epic names (projects)")
	f.IntVar(&opts.teams, "teams", 0, "number of teams (projects)")
	f.StringVarP(&opts.outDir, "out", "o", ".", "directory for the CSV files")
	f.BoolVar(&opts.copy, "copy", false, "copy the first file to the clipboard")
	f.BoolVar(&opts.stdout, "stdout", false, "write the CSV to stdout instead of files")
	cmd.MarkFlagsMutuallyExclusive("data", "xlsx")
	return cmd
}

func (a *App) runGenerate(cmd *cobra.Command, key string, opts generateOptions) error {
	ctx := cmd.Context()
	logger := logging.WithFields(ctx, "template", key)

	if opts.data == "-" && opts.emails == "-" {
		return errors.New("--data and --emails cannot both read stdin")
	}

	in := core.PipelineInput{
		Params: core.Params{
			Component: opts.component,
			Label:     opts.label,
			Teams:     opts.teams,
		},
	}

	switch {
	case opts.xlsx != "":
		rows, err := readSheet(opts.xlsx, opts.sheet)
		if err != nil {
			return err
		}
		in.Rows = rows
		logger.Debug("workbook read", "file", opts.xlsx, "rows", len(rows))
	case opts.data != "":
		text, err := a.readSource(opts.data)
		if err != nil {
			return err
		}
		in.Data = text
	default:
		return fmt.Errorf("one of --data or --xlsx is required: %w", core.MissingParam(core.ParamData))
	}

	if opts.emails != "" {
		text, err := a.readSource(opts.emails)
		if err != nil {
			return err
		}
		in.Emails = text
	}

	out, err := a.service().Generate(ctx, key, in)
	if err != nil {
		return err
	}

	if opts.stdout {
		if len(out.Files) > 1 {
			return fmt.Errorf("output has %d parts; write them with --out instead of --stdout", len(out.Files))
		}
		fmt.Fprint(cmd.OutOrStdout(), out.Files[0].CSV)
	} else {
		if err := writeFiles(cmd, opts.outDir, out.Files); err != nil {
			return err
		}
		printSummary(cmd, out.Summary)
	}

	if opts.copy {
		if err := a.CopyText(out.ClipboardText()); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "copied %s to the clipboard\n", out.Files[0].Name)
		if len(out.Files) > 1 {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: only part 1 of %d was copied\n", len(out.Files))
		}
	}
	return nil
}

// writeFiles writes every part into dir, creating it if needed.
func writeFiles(cmd *cobra.Command, dir string, files []core.OutputFile) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, []byte(f.CSV), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows)\n", path, f.Rows)
	}
	return nil
}

func printSummary(cmd *cobra.Command, s core.Summary) {
	fmt.Fprintf(cmd.OutOrStdout(), "%d rows in %d file(s): %d epics, %d stories, %d tasks, %d sub-tasks, %d assignees\n",
		s.Rows, s.Files, s.Epics, s.Stories, s.Tasks, s.SubTasks, s.Assignees)
}
