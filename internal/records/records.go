// Package records keeps a SQLite log of finished expeditions.
package records

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS expeditions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	recorded_at   INTEGER NOT NULL,
	party_name    TEXT    NOT NULL,
	seed          INTEGER NOT NULL,
	difficulty    TEXT    NOT NULL,
	pace          TEXT    NOT NULL,
	outcome       TEXT    NOT NULL,
	days          INTEGER NOT NULL,
	miles         INTEGER NOT NULL,
	survivors     INTEGER NOT NULL,
	deaths        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_expeditions_outcome ON expeditions(outcome);
`

// Run is one finished expedition, won or lost.
type Run struct {
	ID         int64
	RecordedAt time.Time
	PartyName  string
	Seed       int64
	Difficulty string
	Pace       string
	Outcome    string
	Days       int
	Miles      int
	Survivors  int
	Deaths     int
}

type Store struct {
	db *sql.DB
}

// Open opens the records database, creating the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open records db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping records db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create records schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one finished run.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	recordedAt := run.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO expeditions
			(recorded_at, party_name, seed, difficulty, pace, outcome, days, miles, survivors, deaths)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordedAt.UTC().Unix(), run.PartyName, run.Seed, run.Difficulty, run.Pace,
		run.Outcome, run.Days, run.Miles, run.Survivors, run.Deaths)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return result.LastInsertId()
}

// BestRuns lists victorious runs ordered by fewest days, then most
// survivors.
func (s *Store) BestRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recorded_at, party_name, seed, difficulty, pace, outcome, days, miles, survivors, deaths
		FROM expeditions
		WHERE outcome = 'victory'
		ORDER BY days ASC, survivors DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query best runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// RecentRuns lists the latest runs regardless of outcome.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recorded_at, party_name, seed, difficulty, pace, outcome, days, miles, survivors, deaths
		FROM expeditions
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		var recordedAt int64
		if err := rows.Scan(&run.ID, &recordedAt, &run.PartyName, &run.Seed,
			&run.Difficulty, &run.Pace, &run.Outcome, &run.Days, &run.Miles,
			&run.Survivors, &run.Deaths); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.RecordedAt = time.Unix(recordedAt, 0).UTC()
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Totals summarizes all recorded expeditions.
type Totals struct {
	Runs      int
	Victories int
	Deaths    int
}

func (s *Store) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN outcome = 'victory' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(deaths), 0)
		FROM expeditions`).Scan(&t.Runs, &t.Victories, &t.Deaths)
	if err != nil {
		return t, fmt.Errorf("query totals: %w", err)
	}
	return t, nil
}
