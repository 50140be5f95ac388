// Package library persists the state carried between runs: section digests,
// a snapshot of the last committed catalog and the run history.
package library

import (
	"time"

	"github.com/vmunix/m3ustrm/internal/catalog"
)

// Run records one completed run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Entries    int            // parsed playlist entries
	Counts     catalog.Counts // catalog size after the run
	Changed    []string       // changed section names
	Baseline   bool           // first run, nothing to compare against
	NewItems   int            // size of the new-content delta
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
