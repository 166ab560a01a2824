package cli

import (
	"fmt"

	"github.com/alexanderramin/trax/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show total tracked time and the latest row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd)
			defer cancel()

			st, err := app.Status.GetStatus(ctx, app.user(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(st, app.now()))
			return nil
		},
	}
}
