package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/trax/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,

		Annotations: map[string]string{annotationStore: storeNone},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config == nil {
				return errors.New("no configuration loaded")
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConfig(app.Config.Entries()))
			return nil
		},
	}
}
