package repository

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var _ domain.ExerciseCatalog = (*PostgresCatalogRepository)(nil)

// PostgresCatalogRepository reads the exercise catalog from the exercises
// table. Arrays travel as Postgres array literals so the same code works
// with both lib/pq and pgx.
type PostgresCatalogRepository struct {
	db *sqlx.DB
}

func NewPostgresCatalogRepository(db *sqlx.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

type exerciseRow struct {
	Name     string         `db:"name"`
	Category pq.StringArray `db:"category"`
	Part     pq.StringArray `db:"part"`
}

func (r *PostgresCatalogRepository) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var rows []exerciseRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT name, category::text AS category, part::text AS part
		FROM exercises
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("repository: list exercises failed: %w", err)
	}

	exercises := make([]domain.Exercise, 0, len(rows))
	for _, row := range rows {
		exercises = append(exercises, domain.Exercise{
			Name:     row.Name,
			Category: domain.Categories(row.Category),
			Part:     []string(row.Part),
		})
	}
	return exercises, nil
}

// Upsert inserts or replaces exercises by name, keeping their first
// insertion position.
func (r *PostgresCatalogRepository) Upsert(ctx context.Context, exercises []domain.Exercise) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := tx.Rebind(`
		INSERT INTO exercises (name, category, part)
		VALUES (?, CAST(? AS TEXT)::TEXT[], CAST(? AS TEXT)::TEXT[])
		ON CONFLICT (name) DO UPDATE SET category = excluded.category, part = excluded.part
	`)

	for _, e := range exercises {
		category, err := textArray(e.Category)
		if err != nil {
			return err
		}
		part, err := textArray(e.Part)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, e.Name, category, part); err != nil {
			return fmt.Errorf("repository: upsert exercise %q failed: %w", e.Name, err)
		}
	}

	return tx.Commit()
}

func textArray(values []string) (driver.Value, error) {
	if values == nil {
		values = []string{}
	}
	return pq.StringArray(values).Value()
}
