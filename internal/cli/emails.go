package cli

import (
	"fmt"

	"github.com/JonMunkholm/issuecsv/internal/core"
	"github.com/spf13/cobra"
)

func newEmailsCmd(app *App) *cobra.Command {
	var names bool
	cmd := &cobra.Command{
		Use:   "emails <file>",
		Short: "Print the email addresses found in a file",
		Long: `Extract email addresses the way the templates do: every cell of every
line is checked, duplicates are dropped and the result is sorted.
Use - to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.readSource(args[0])
			if err != nil {
				return err
			}
			if err := core.CheckEmailPaste(text); err != nil {
				return err
			}
			emails, err := core.ExtractEmails(text)
			if err != nil {
				return err
			}
			for _, e := range emails {
				if names {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e, core.DisplayName(e))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&names, "names", false, "also print the display name derived from each address")
	return cmd
}
