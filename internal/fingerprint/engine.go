package fingerprint

import (
	"context"
	"fmt"
	"log/slog"
)

// Engine compares a run's digests with the stored ones and persists them
// once the run succeeds.
type Engine struct {
	store  Store
	logger *slog.Logger
}

// NewEngine creates an engine over store.
func NewEngine(store Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, logger: logger.With("component", "fingerprint")}
}

// Comparison is the outcome of Begin.
type Comparison struct {
	Previous Digests
	Current  Digests
	Changes  Changes
	// Baseline is true when no digests were stored before this run.
	Baseline bool
}

// Begin loads the previous digests and compares them with cur. A store
// error is returned wrapped in ErrStoreUnavailable.
func (e *Engine) Begin(ctx context.Context, cur Digests) (Comparison, error) {
	prev, ok, err := e.store.Load(ctx)
	if err != nil {
		return Comparison{}, fmt.Errorf("%w: load: %w", ErrStoreUnavailable, err)
	}
	res := Comparison{
		Previous: prev,
		Current:  cur,
		Changes:  cur.Changes(prev),
		Baseline: !ok,
	}
	e.logger.Debug("compared digests",
		"baseline", res.Baseline,
		"changed", res.Changes.Sections(),
	)
	return res, nil
}

// Commit stores cur as the baseline for the next run.
func (e *Engine) Commit(ctx context.Context, cur Digests) error {
	if err := e.store.Save(ctx, cur); err != nil {
		return fmt.Errorf("%w: save: %w", ErrStoreUnavailable, err)
	}
	return nil
}
