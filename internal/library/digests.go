package library

import (
	"context"
	"fmt"
	"time"

	"github.com/vmunix/m3ustrm/internal/fingerprint"
)

func loadDigests(ctx context.Context, q querier) (fingerprint.Digests, bool, error) {
	rows, err := q.QueryContext(ctx, `SELECT section, digest FROM fingerprints`)
	if err != nil {
		return fingerprint.Digests{}, false, fmt.Errorf("query fingerprints: %w", mapSQLiteError(err))
	}
	defer rows.Close()

	var d fingerprint.Digests
	found := false
	for rows.Next() {
		var section, digest string
		if err := rows.Scan(&section, &digest); err != nil {
			return fingerprint.Digests{}, false, fmt.Errorf("scan fingerprint: %w", err)
		}
		switch section {
		case fingerprint.SectionSeries:
			d.Series = digest
		case fingerprint.SectionMovies:
			d.Movies = digest
		case fingerprint.SectionLive:
			d.Live = digest
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return fingerprint.Digests{}, false, fmt.Errorf("iterate fingerprints: %w", err)
	}
	return d, found, nil
}

// Load returns the stored digests; ok is false before the first commit.
func (s *Store) Load(ctx context.Context) (fingerprint.Digests, bool, error) {
	return loadDigests(ctx, s.db)
}

func saveDigests(ctx context.Context, q querier, d fingerprint.Digests) error {
	now := time.Now().UTC()
	for _, row := range []struct{ section, digest string }{
		{fingerprint.SectionSeries, d.Series},
		{fingerprint.SectionMovies, d.Movies},
		{fingerprint.SectionLive, d.Live},
	} {
		_, err := q.ExecContext(ctx, `
			INSERT INTO fingerprints (section, digest, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(section) DO UPDATE SET digest = excluded.digest, updated_at = excluded.updated_at`,
			row.section, row.digest, now,
		)
		if err != nil {
			return fmt.Errorf("save %s digest: %w", row.section, mapSQLiteError(err))
		}
	}
	return nil
}

// Save stores all three digests atomically.
func (s *Store) Save(ctx context.Context, d fingerprint.Digests) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.SaveDigests(ctx, d); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveDigests stores all three digests within a transaction.
func (t *Tx) SaveDigests(ctx context.Context, d fingerprint.Digests) error {
	return saveDigests(ctx, t.tx, d)
}

// DigestRecord is a stored digest with its update time.
type DigestRecord struct {
	Section   string
	Digest    string
	UpdatedAt time.Time
}

// ListDigests returns the stored digests ordered by section.
func (s *Store) ListDigests(ctx context.Context) ([]DigestRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT section, digest, updated_at FROM fingerprints ORDER BY section`)
	if err != nil {
		return nil, fmt.Errorf("query fingerprints: %w", mapSQLiteError(err))
	}
	defer rows.Close()

	var out []DigestRecord
	for rows.Next() {
		var r DigestRecord
		if err := rows.Scan(&r.Section, &r.Digest, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
