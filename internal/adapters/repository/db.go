package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database drivers accepted by Open. "postgres" selects lib/pq, "pgx" the pgx
// stdlib driver; both talk to the same Postgres schema.
const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

func PostgresDSN(user, password, host, port, name string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverPgx, DriverPostgres:
		db, err := sqlx.ConnectContext(ctx, driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("repository: connect %s: %w", driver, err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		return db, nil

	case DriverSQLite:
		return openSQLite(ctx, dsn)

	default:
		return nil, fmt.Errorf("repository: unsupported driver %q", driver)
	}
}

func openSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("repository: creating db directory: %w", err)
		}
	}

	db, err := sqlx.Open(DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("repository: opening sqlite: %w", err)
	}

	// A single connection keeps :memory: databases alive and serializes
	// writers.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("repository: %s: %w", pragma, err)
		}
	}

	return db, nil
}

func isSQLite(db *sqlx.DB) bool {
	return db.DriverName() == DriverSQLite
}
