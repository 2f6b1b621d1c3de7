// Package store keeps the history of finished rounds.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RoundResult is one finished round.
type RoundResult struct {
	SessionID      string    `json:"session_id"`
	Round          int       `json:"round"`
	Cleared        bool      `json:"cleared"`
	Blessings      int       `json:"blessings"`
	BlessingsTotal int       `json:"blessings_total"`
	Curses         int       `json:"curses"`
	CursesTotal    int       `json:"curses_total"`
	TimeLimit      int       `json:"time_limit"`
	Score          int32     `json:"score"`
	Money          int32     `json:"money"`
	Income         int32     `json:"income"`
	FinishedAt     time.Time `json:"finished_at"`
}

// RoundStore persists round results.
type RoundStore interface {
	Save(ctx context.Context, r RoundResult) error
	// Recent returns up to limit results, newest first.
	Recent(ctx context.Context, limit int) ([]RoundResult, error)
	// Session returns up to limit results of one session, newest first.
	Session(ctx context.Context, sessionID string, limit int) ([]RoundResult, error)
	Close() error
}

// ErrClosed is returned by a closed store.
var ErrClosed = errors.New("store: closed")

// Config selects a backend. Type is "memory", "sqlite", "postgres" or
// "mysql". Path is used by sqlite, URL by the others.
type Config struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
}

// Open returns the configured backend.
func Open(ctx context.Context, cfg Config) (RoundStore, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite", "sqlite3":
		return OpenSQL(ctx, NewSQLiteDialect(), cfg.Path)
	case "postgres", "postgresql":
		return OpenSQL(ctx, NewPostgresDialect(), cfg.URL)
	case "mysql":
		return OpenSQL(ctx, NewMySQLDialect(), cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}
