package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTemplatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tPARAMETERS\tINPUT")
			for _, info := range app.service().ListTemplates() {
				params := make([]string, len(info.Params))
				for i, p := range info.Params {
					params[i] = string(p)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Key, info.Label, strings.Join(params, ","), info.Hint)
			}
			return tw.Flush()
		},
	}
}
