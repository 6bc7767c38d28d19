package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openSQLiteTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "kanso.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return db
}

// openPostgresTestDB skips the test when no Postgres is reachable.
func openPostgresTestDB(t *testing.T, driver string) *sqlx.DB {
	t.Helper()

	dsn := PostgresDSN(
		getEnv("DB_USER", "kanso_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "kanso_db"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db, err := Open(ctx, driver, dsn)
	if err != nil {
		t.Skipf("Skipping Postgres integration test: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db))
	return db
}

// forEachDB runs fn against SQLite and, when available, Postgres through
// both supported drivers.
func forEachDB(t *testing.T, fn func(t *testing.T, db *sqlx.DB)) {
	t.Run("sqlite", func(t *testing.T) {
		fn(t, openSQLiteTestDB(t))
	})
	for _, driver := range []string{DriverPgx, DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			fn(t, openPostgresTestDB(t, driver))
		})
	}
}
