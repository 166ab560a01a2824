package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/trax/internal/app"
	"github.com/alexanderramin/trax/internal/config"
	"github.com/alexanderramin/trax/internal/domain"
	"github.com/spf13/cobra"
)

// App holds references to the use cases and settings CLI commands need.
// Init, when set, runs before any command with the --config value and is
// expected to fill in the remaining fields. openStore is false for commands
// that never touch the row store.
type App struct {
	Status   app.StatusUseCase
	Track    app.TrackUseCase
	Rows     app.ListRowsUseCase
	AddUser  app.AddUserUseCase
	Config   *config.Config
	Now      func() time.Time
	Init     func(configPath string, openStore bool) error
	Interact func() bool

	// PromptDescription asks for a description when none was given on an
	// interactive terminal.
	PromptDescription func(ctx context.Context) (string, error)
}

const (
	annotationStore = "store"
	storeNone       = "none"
)

// NewRootCmd creates the top-level "trax" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "trax",
		Short:         "Track work intervals in a per-user row store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Init == nil || builtinCommand(cmd) {
				return nil
			}
			return app.Init(configPath, cmd.Annotations[annotationStore] != storeNone)
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArguments, err)
	})

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.trax/config.yaml)")
	root.PersistentFlags().String("user", "", "Worksheet / user to act on (default from config)")

	root.AddCommand(
		newStatusCmd(app),
		newTrackCmd(app),
		newRowsCmd(app),
		newUserCmd(app),
		newConfigCmd(app),
	)

	return root
}

// builtinCommand reports whether cmd is one of cobra's generated help or
// completion commands, which need neither config nor a store.
func builtinCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// user resolves the --user flag against the configured default.
func (a *App) user(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	if a.Config != nil && a.Config.User != "" {
		return a.Config.User
	}
	return config.DefaultUser
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.Interact != nil && a.Interact()
}

// requestContext bounds a command's store calls by the configured timeout.
func (a *App) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if a.Config == nil || a.Config.RequestTimeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), a.Config.RequestTimeout)
}
