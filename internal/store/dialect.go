package store

import (
	"database/sql"
	"regexp"
	"strconv"
	"time"
)

// Dialect hides the differences between SQL backends.
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string
	// RewriteQuery converts ? placeholders if the backend needs another syntax
	RewriteQuery(query string) string
	// ConfigureConnection applies pool limits and session settings
	ConfigureConnection(db *sql.DB) error
	// CreateRoundsTableQuery returns the DDL of the rounds table
	CreateRoundsTableQuery() string
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
}
