package cli

import (
	"fmt"

	"github.com/alexanderramin/trax/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRowsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rows",
		Aliases: []string{"ls"},
		Short:   "List tracked rows in the order they were recorded",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd)
			defer cancel()

			user := app.user(cmd)
			rows, err := app.Rows.ListRows(ctx, user)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRows(user, rows, app.now()))
			return nil
		},
	}
}
