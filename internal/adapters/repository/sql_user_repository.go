package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.UserRepository = (*SQLUserRepository)(nil)

// SQLUserRepository stores accounts in Postgres or SQLite.
type SQLUserRepository struct {
	db *sqlx.DB
}

func NewSQLUserRepository(db *sqlx.DB) *SQLUserRepository {
	return &SQLUserRepository{
		db: db,
	}
}

const userColumns = `id, username, password_hash, name, gender, birth, height,
	current_streak, longest_streak, created_at, updated_at`

func (r *SQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := r.db.Rebind(`
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Name,
		user.Gender,
		user.Birth,
		user.Height,
		user.CurrentStreak,
		user.LongestStreak,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

func (r *SQLUserRepository) get(ctx context.Context, column, value string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`)

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user by %s failed: %w", column, err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}

func (r *SQLUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, "id", id)
}

func (r *SQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.get(ctx, "username", username)
}

func (r *SQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := r.db.Rebind(`
		UPDATE users
		SET password_hash = ?, name = ?, gender = ?, birth = ?, height = ?, updated_at = ?
		WHERE id = ?
	`)

	res, err := r.db.ExecContext(ctx, query,
		user.PasswordHash,
		user.Name,
		user.Gender,
		user.Birth,
		user.Height,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("repository: update user failed: %w", err)
	}

	return requireOneRow(res)
}

func (r *SQLUserRepository) UpdateStreak(ctx context.Context, id string, streak domain.Streak) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := r.db.Rebind(`
		UPDATE users
		SET current_streak = ?, longest_streak = ?, updated_at = ?
		WHERE id = ?
	`)

	res, err := r.db.ExecContext(ctx, query, streak.Current, streak.Longest, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("repository: update streak failed: %w", err)
	}

	return requireOneRow(res)
}

func (r *SQLUserRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("repository: list user ids failed: %w", err)
	}
	return ids, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
