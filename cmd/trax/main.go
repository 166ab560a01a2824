package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/trax/internal/cli"
	"github.com/alexanderramin/trax/internal/cli/formatter"
	"github.com/alexanderramin/trax/internal/config"
	"github.com/alexanderramin/trax/internal/rowstore"
	"github.com/alexanderramin/trax/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, formatter.ErrorStyle(err).Render("Error: "+err.Error()))
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	app := &cli.App{
		PromptDescription: cli.PromptDescription,
	}

	// Only prompt when both ends are a terminal.
	app.Interact = func() bool {
		return isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}

	var store rowstore.Store
	var logger zerolog.Logger
	defer func() {
		if store == nil {
			return
		}
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close row store")
		}
	}()

	app.Init = func(configPath string, openStore bool) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		logger = config.NewLogger(cfg.Logging, os.Stderr)
		clock := service.SystemClock(loc)

		app.Config = cfg
		app.Now = clock
		if !openStore {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()

		store, err = openRowStore(ctx, cfg, logger)
		if err != nil {
			return err
		}

		observer := service.NewLogUseCaseObserver(logger)
		app.Status = service.NewStatusService(store, clock, observer)
		app.Track = service.NewTrackService(store, cfg.IntervalPolicy(), clock, observer)
		app.Rows = service.NewRowService(store, clock, observer)
		app.AddUser = service.NewUserService(store, observer)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
