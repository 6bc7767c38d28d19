package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

type MonthGridder interface {
	MonthGrid(ctx context.Context, userID string, year, monthIndex int) (domain.YearMonth, []domain.CalendarCell, error)
}

type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type CatalogSeeder interface {
	Upsert(ctx context.Context, exercises []domain.Exercise) error
}

type StreakSweeper interface {
	RecomputeAll(ctx context.Context) (int, error)
}

// App holds what the admin commands need. Nil ports mean the configured
// storage does not support the command.
type App struct {
	Migrate  func(ctx context.Context) error
	Seeder   CatalogSeeder
	Calendar MonthGridder
	Users    UserFinder
	Streaks  StreakSweeper

	// Color enables lipgloss styling; it is off when stdout is not a terminal.
	Color bool
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "kansoctl",
		Short:         "Administration tool for the Kanso routine engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(app),
		newCatalogCmd(app),
		newCalendarCmd(app),
		newStreaksCmd(app),
	)

	return root
}
