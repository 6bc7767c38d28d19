package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/app"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/cli"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Schema changes only happen through the migrate command.
	cfg.AutoMigrate = false

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	cliApp := &cli.App{
		Color: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
	if application.DB != nil {
		cliApp.Calendar = application.Records
		cliApp.Users = application.Users
		cliApp.Streaks = application.Streaks
		cliApp.Migrate = func(ctx context.Context) error {
			return repository.Migrate(ctx, application.DB)
		}
	}
	if application.Exercises != nil {
		cliApp.Seeder = application.Exercises
	}

	return cli.NewRootCmd(cliApp).ExecuteContext(ctx)
}
