// Package sqlite is a single-file feeding journal for deployments without Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"
)

type EventRepo struct {
	db *sql.DB
}

func Open(path string) (*EventRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps writers serialized; SQLite allows a single writer anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &EventRepo{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS feeding_events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  type TEXT NOT NULL,
  kind TEXT NOT NULL DEFAULT '',
  reporter_id INTEGER NOT NULL DEFAULT 0,
  outcome TEXT NOT NULL DEFAULT '',
  amount INTEGER NOT NULL DEFAULT 0,
  distance REAL NOT NULL DEFAULT 0,
  satiation INTEGER NOT NULL DEFAULT 0,
  x INTEGER NOT NULL DEFAULT 0,
  y INTEGER NOT NULL DEFAULT 0,
  occurred_at_ns INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS feeding_events_occurred_idx ON feeding_events (occurred_at_ns DESC);`)
	if err != nil {
		return fmt.Errorf("sqlite schema: %w", err)
	}
	return nil
}

func (r *EventRepo) Close() error {
	return r.db.Close()
}

func (r *EventRepo) Append(ctx context.Context, events []predator.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO feeding_events
  (type, kind, reporter_id, outcome, amount, distance, satiation, x, y, occurred_at_ns)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.ExecContext(ctx,
			string(e.Type), string(e.Kind), e.ReporterID, string(e.Outcome), e.Amount,
			e.Distance, e.Satiation, e.Position.X, e.Position.Y, e.OccurredAt.UnixNano(),
		); err != nil {
			return fmt.Errorf("insert feeding event: %w", err)
		}
	}
	return tx.Commit()
}

func (r *EventRepo) List(ctx context.Context, q ports.EventQuery) ([]predator.Event, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if q.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(q.Type))
	}
	if q.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(q.Kind))
	}
	if !q.OccurredFrom.IsZero() {
		where = append(where, "occurred_at_ns >= ?")
		args = append(args, q.OccurredFrom.UnixNano())
	}
	if !q.OccurredTo.IsZero() {
		where = append(where, "occurred_at_ns <= ?")
		args = append(args, q.OccurredTo.UnixNano())
	}

	query := `SELECT type, kind, reporter_id, outcome, amount, distance, satiation, x, y, occurred_at_ns FROM feeding_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY occurred_at_ns DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]predator.Event, 0)
	for rows.Next() {
		var (
			e                  predator.Event
			typ, kind, outcome string
			occurredNS         int64
		)
		if err := rows.Scan(&typ, &kind, &e.ReporterID, &outcome, &e.Amount, &e.Distance, &e.Satiation, &e.Position.X, &e.Position.Y, &occurredNS); err != nil {
			return nil, err
		}
		e.Type = predator.EventType(typ)
		e.Kind = predator.ReportKind(kind)
		e.Outcome = predator.Outcome(outcome)
		e.OccurredAt = time.Unix(0, occurredNS).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}

var _ ports.EventRepository = (*EventRepo)(nil)
