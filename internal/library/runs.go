package library

import (
	"context"
	"fmt"
	"strings"
)

// AddRun records a run within a transaction.
func (t *Tx) AddRun(ctx context.Context, r Run) error {
	return addRun(ctx, t.tx, r)
}

func addRun(ctx context.Context, q querier, r Run) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, entries, shows, episodes, movies, live, changed, baseline, new_items)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC(), r.FinishedAt.UTC(), r.Entries,
		r.Counts.Shows, r.Counts.Episodes, r.Counts.Movies, r.Counts.Live,
		strings.Join(r.Changed, ","), r.Baseline, r.NewItems,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, mapSQLiteError(err))
	}
	return nil
}

const runColumns = `id, started_at, finished_at, entries, shows, episodes, movies, live, changed, baseline, new_items`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var changed string
	err := sc.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Entries,
		&r.Counts.Shows, &r.Counts.Episodes, &r.Counts.Movies, &r.Counts.Live,
		&changed, &r.Baseline, &r.NewItems)
	if err != nil {
		return Run{}, err
	}
	if changed != "" {
		r.Changed = strings.Split(changed, ",")
	}
	return r, nil
}

// GetRun retrieves a run by ID.
// Returns ErrNotFound if the run does not exist.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, mapSQLiteError(err))
	}
	return &r, nil
}

// ListRuns returns the most recent runs, newest first. A limit of 0 returns
// every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", mapSQLiteError(err))
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
