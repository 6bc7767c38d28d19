package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.UserStateRepository = (*SQLStateRepository)(nil)

// SQLStateRepository keeps routines and completions in their own tables;
// a routine's week and a completion's list are stored as JSON text.
type SQLStateRepository struct {
	db *sqlx.DB
}

func NewSQLStateRepository(db *sqlx.DB) *SQLStateRepository {
	return &SQLStateRepository{
		db: db,
	}
}

type routineRow struct {
	RoutineID    string    `db:"routine_id"`
	Title        string    `db:"title"`
	LastModified time.Time `db:"last_modified"`
	WeekRoutine  string    `db:"week_routine"`
}

type completionRow struct {
	Date string `db:"date"`
	List string `db:"list"`
}

func (r *SQLStateRepository) LoadUserState(ctx context.Context, userID string) (*domain.UserState, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	state := domain.NewUserState(userID)

	err := r.db.GetContext(ctx, &state.CurrentRoutineID,
		r.db.Rebind(`SELECT current_routine_id FROM user_state WHERE user_id = ?`), userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("repository: load current routine failed: %w", err)
	}

	var routines []routineRow
	err = r.db.SelectContext(ctx, &routines, r.db.Rebind(`
		SELECT routine_id, title, last_modified, week_routine
		FROM routines
		WHERE user_id = ?
		ORDER BY position
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("repository: load routines failed: %w", err)
	}

	for _, row := range routines {
		routine := &domain.Routine{
			RoutineID:    row.RoutineID,
			Title:        row.Title,
			LastModified: row.LastModified.UTC(),
		}
		if err := json.Unmarshal([]byte(row.WeekRoutine), &routine.WeekRoutine); err != nil {
			return nil, fmt.Errorf("repository: decode routine %s: %w", row.RoutineID, err)
		}
		state.Routines = append(state.Routines, routine)
	}

	var completions []completionRow
	err = r.db.SelectContext(ctx, &completions, r.db.Rebind(`
		SELECT date, list FROM completions WHERE user_id = ? ORDER BY date
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("repository: load completions failed: %w", err)
	}

	for _, row := range completions {
		item := domain.CompleteItem{Date: row.Date}
		if err := json.Unmarshal([]byte(row.List), &item.List); err != nil {
			return nil, fmt.Errorf("repository: decode completion %s: %w", row.Date, err)
		}
		if item.List == nil {
			item.List = []domain.ExerciseItem{}
		}
		state.Completions = append(state.Completions, item)
	}
	state.Completions.Sort()

	return state, nil
}

// SaveUserState replaces every stored row of the user in one transaction.
func (r *SQLStateRepository) SaveUserState(ctx context.Context, userID string, state *domain.UserState) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO user_state (user_id, current_routine_id) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET current_routine_id = excluded.current_routine_id
	`), userID, state.CurrentRoutineID); err != nil {
		return fmt.Errorf("repository: save current routine failed: %w", err)
	}

	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM routines WHERE user_id = ?`), userID); err != nil {
		return fmt.Errorf("repository: clear routines failed: %w", err)
	}

	insertRoutine := tx.Rebind(`
		INSERT INTO routines (user_id, routine_id, position, title, last_modified, week_routine)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	for i, routine := range state.Routines {
		week, mErr := json.Marshal(routine.WeekRoutine)
		if mErr != nil {
			return fmt.Errorf("repository: encode routine %s: %w", routine.RoutineID, mErr)
		}
		if _, err = tx.ExecContext(ctx, insertRoutine,
			userID, routine.RoutineID, i, routine.Title, routine.LastModified.UTC(), string(week),
		); err != nil {
			return fmt.Errorf("repository: insert routine %s failed: %w", routine.RoutineID, err)
		}
	}

	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM completions WHERE user_id = ?`), userID); err != nil {
		return fmt.Errorf("repository: clear completions failed: %w", err)
	}

	insertCompletion := tx.Rebind(`INSERT INTO completions (user_id, date, list) VALUES (?, ?, ?)`)
	for _, c := range state.Completions {
		list := c.List
		if list == nil {
			list = []domain.ExerciseItem{}
		}
		data, mErr := json.Marshal(list)
		if mErr != nil {
			return fmt.Errorf("repository: encode completion %s: %w", c.Date, mErr)
		}
		if _, err = tx.ExecContext(ctx, insertCompletion, userID, c.Date, string(data)); err != nil {
			return fmt.Errorf("repository: insert completion %s failed: %w", c.Date, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit state failed: %w", err)
	}
	return nil
}
