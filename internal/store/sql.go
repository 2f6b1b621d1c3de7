package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQL stores results in a database reached through a Dialect.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL connects, configures the connection and creates the rounds table.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQL, error) {
	if _, ok := dialect.(*SQLiteDialect); ok {
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}
	if _, err := db.ExecContext(ctx, dialect.CreateRoundsTableQuery()); err != nil {
		db.Close()
		return nil, fmt.Errorf("create rounds table: %w", err)
	}
	return &SQL{db: db, dialect: dialect}, nil
}

const roundColumns = `session_id, round, cleared, blessings, blessings_total, curses, curses_total,
	time_limit, score, money, income, finished_at_ms`

func (s *SQL) Save(ctx context.Context, r RoundResult) error {
	q := s.dialect.RewriteQuery(`INSERT INTO rounds (` + roundColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, q,
		r.SessionID, r.Round, r.Cleared, r.Blessings, r.BlessingsTotal, r.Curses, r.CursesTotal,
		r.TimeLimit, r.Score, r.Money, r.Income, r.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save round: %w", err)
	}
	return nil
}

func (s *SQL) Recent(ctx context.Context, limit int) ([]RoundResult, error) {
	q := s.dialect.RewriteQuery(`SELECT ` + roundColumns + ` FROM rounds ORDER BY id DESC LIMIT ?`)
	return s.query(ctx, q, limit)
}

func (s *SQL) Session(ctx context.Context, sessionID string, limit int) ([]RoundResult, error) {
	q := s.dialect.RewriteQuery(`SELECT ` + roundColumns + ` FROM rounds WHERE session_id = ? ORDER BY id DESC LIMIT ?`)
	return s.query(ctx, q, sessionID, limit)
}

func (s *SQL) query(ctx context.Context, q string, args ...any) ([]RoundResult, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()
	var out []RoundResult
	for rows.Next() {
		var (
			r  RoundResult
			ms int64
		)
		if err := rows.Scan(&r.SessionID, &r.Round, &r.Cleared, &r.Blessings, &r.BlessingsTotal,
			&r.Curses, &r.CursesTotal, &r.TimeLimit, &r.Score, &r.Money, &r.Income, &ms); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		r.FinishedAt = time.UnixMilli(ms).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQL) Close() error { return s.db.Close() }
