package store

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL.
type MySQLDialect struct{}

func NewMySQLDialect() *MySQLDialect { return &MySQLDialect{} }

func (d *MySQLDialect) DriverName() string { return "mysql" }

func (d *MySQLDialect) RewriteQuery(query string) string { return query }

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)
	return nil
}

func (d *MySQLDialect) CreateRoundsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS rounds (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			session_id VARCHAR(64) NOT NULL,
			round INT NOT NULL,
			cleared BOOLEAN NOT NULL,
			blessings INT NOT NULL,
			blessings_total INT NOT NULL,
			curses INT NOT NULL,
			curses_total INT NOT NULL,
			time_limit INT NOT NULL,
			score INT NOT NULL,
			money INT NOT NULL,
			income INT NOT NULL,
			finished_at_ms BIGINT NOT NULL
		);
	`
}
