package cli

import (
	"fmt"

	"github.com/alexanderramin/trax/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Create a user's row collection on stores that support it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.requestContext(cmd)
			defer cancel()

			if err := app.AddUser.AddUser(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔ Added user"), formatter.Bold(args[0]))
			return nil
		},
	})
	return cmd
}
