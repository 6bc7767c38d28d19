package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/catalog"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

var errNeedsDatabase = errors.New("this command needs STORAGE_DRIVER=postgres or sqlite")

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Migrate == nil {
				return errNeedsDatabase
			}
			if err := app.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), paint(app.Color, styleOK, "Schema is up to date."))
			return nil
		},
	}
}

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the exercise catalog",
	}
	cmd.AddCommand(newCatalogSeedCmd(app))
	return cmd
}

func newCatalogSeedCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert or update catalog exercises from a JSON file (default: built-in catalog)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Seeder == nil {
				return errors.New("the catalog table exists only with STORAGE_DRIVER=postgres")
			}

			source, err := catalog.Load(file)
			if err != nil {
				return err
			}
			exercises, err := source.ListExercises(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Seeder.Upsert(cmd.Context(), exercises); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %d exercises\n", paint(app.Color, styleOK, "Seeded"), len(exercises))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog JSON file")
	return cmd
}

func newCalendarCmd(app *App) *cobra.Command {
	var (
		username string
		month    string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the workout calendar of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Calendar == nil || app.Users == nil {
				return errNeedsDatabase
			}

			ym := domain.CurrentYearMonth(time.Now())
			if month != "" {
				parsed, err := domain.ParseYearMonth(month)
				if err != nil {
					return err
				}
				ym = parsed
			}

			user, err := app.Users.GetByUsername(cmd.Context(), username)
			if err != nil {
				return fmt.Errorf("user %q: %w", username, err)
			}

			ym, cells, err := app.Calendar.MonthGrid(cmd.Context(), user.ID, ym.Year, ym.Month)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), RenderMonth(ym, cells, app.Color))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "username")
	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default: current month)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newStreaksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streaks",
		Short: "Workout streak maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "recompute",
		Short: "Recompute the stored streak of every user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Streaks == nil {
				return errNeedsDatabase
			}
			n, err := app.Streaks.RecomputeAll(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Checked %d users\n", n)
			return err
		},
	})

	return cmd
}
