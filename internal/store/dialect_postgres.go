package store

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL.
type PostgresDialect struct{}

func NewPostgresDialect() *PostgresDialect { return &PostgresDialect{} }

func (d *PostgresDialect) DriverName() string { return "postgres" }

func (d *PostgresDialect) RewriteQuery(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)
	return nil
}

func (d *PostgresDialect) CreateRoundsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS rounds (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			cleared BOOLEAN NOT NULL,
			blessings INTEGER NOT NULL,
			blessings_total INTEGER NOT NULL,
			curses INTEGER NOT NULL,
			curses_total INTEGER NOT NULL,
			time_limit INTEGER NOT NULL,
			score INTEGER NOT NULL,
			money INTEGER NOT NULL,
			income INTEGER NOT NULL,
			finished_at_ms BIGINT NOT NULL
		);
	`
}
