// Package runner drives sync runs: read the playlist, build the catalog,
// detect changes, hand the catalog to the file writer, persist state and
// announce new content.
package runner

//go:generate mockgen -source=runner.go -destination=mocks/runner.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/internal/classify"
	"github.com/vmunix/m3ustrm/internal/events"
	"github.com/vmunix/m3ustrm/internal/fingerprint"
	"github.com/vmunix/m3ustrm/internal/library"
	"github.com/vmunix/m3ustrm/internal/live"
	"github.com/vmunix/m3ustrm/internal/pipeline"
)

// PlaylistSource provides the playlist text for a run.
type PlaylistSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FilterSource provides the user's content selection for a run.
type FilterSource interface {
	Filter(ctx context.Context) (catalog.Filter, error)
}

// Materializer writes the catalog out, for example as STRM files. It is
// called only when at least one section changed.
type Materializer interface {
	Materialize(ctx context.Context, c *catalog.Catalog, changes fingerprint.Changes) error
}

// SnapshotStore keeps the last committed catalog so new content can be
// told apart from known content.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (*catalog.Catalog, error)
	Commit(ctx context.Context, run library.Run, d fingerprint.Digests, c *catalog.Catalog) error
}

// Config for the runner.
type Config struct {
	Groups classify.Groups
	Live   live.Options
	// LockPath is the run lock file. Empty disables locking.
	LockPath string
}

// Deps are the runner's collaborators. Source and Digests are required.
type Deps struct {
	Source       PlaylistSource
	Digests      fingerprint.Store
	Snapshots    SnapshotStore // nil: digests only, no content events
	Filters      FilterSource  // nil: unrestricted
	Materializer Materializer  // nil: nothing is written
	Bus          *events.Bus   // nil: no events
}

// Runner executes sync runs.
type Runner struct {
	cfg    Config
	deps   Deps
	engine *fingerprint.Engine
	logger *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(cfg Config, deps Deps, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:    cfg,
		deps:   deps,
		engine: fingerprint.NewEngine(deps.Digests, logger),
		logger: logger.With("component", "runner"),
	}
}

// Result summarizes a committed run.
type Result struct {
	RunID       string
	Catalog     *catalog.Catalog
	Diagnostics pipeline.Diagnostics
	Changes     fingerprint.Changes
	Delta       fingerprint.Delta
	Duration    time.Duration
}

// RunOnce performs one run. Store errors are fatal and wrap
// fingerprint.ErrStoreUnavailable; a materializer error aborts the run
// before anything is committed.
func (r *Runner) RunOnce(ctx context.Context) (*Result, error) {
	unlock, err := r.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	runID := uuid.NewString()
	started := time.Now().UTC()
	log := r.logger.With("run_id", runID)
	log.Info("run started")

	var filter catalog.Filter
	if r.deps.Filters != nil {
		if filter, err = r.deps.Filters.Filter(ctx); err != nil {
			return nil, fmt.Errorf("load selection: %w", err)
		}
	}

	built, err := r.build(ctx, filter, log)
	if err != nil {
		return nil, err
	}
	log.Info("playlist processed", "diagnostics", built.Diagnostics)

	digests := fingerprint.Compute(built.Catalog)
	cmp, err := r.engine.Begin(ctx, digests)
	if err != nil {
		return nil, err
	}

	delta := fingerprint.Delta{Baseline: cmp.Baseline}
	if r.deps.Snapshots != nil && !cmp.Baseline && cmp.Changes.Any() {
		prev, err := r.deps.Snapshots.LoadSnapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: load snapshot: %w", fingerprint.ErrStoreUnavailable, err)
		}
		delta = fingerprint.ComputeDelta(prev, built.Catalog)
	}

	if r.deps.Materializer != nil && cmp.Changes.Any() {
		if err := r.deps.Materializer.Materialize(ctx, built.Catalog, cmp.Changes); err != nil {
			return nil, fmt.Errorf("materialize: %w", err)
		}
	}

	run := library.Run{
		ID:         runID,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Entries:    built.Diagnostics.Parsed,
		Counts:     built.Catalog.Counts(),
		Changed:    cmp.Changes.Sections(),
		Baseline:   delta.Baseline,
		NewItems:   delta.Count(),
	}
	if err := r.commit(ctx, run, digests, built.Catalog); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:       runID,
		Catalog:     built.Catalog,
		Diagnostics: built.Diagnostics,
		Changes:     cmp.Changes,
		Delta:       delta,
		Duration:    run.Duration(),
	}
	r.publish(ctx, res, log)

	log.Info("run completed",
		"changed", run.Changed,
		"baseline", run.Baseline,
		"new_items", run.NewItems,
		"duration", res.Duration,
	)
	return res, nil
}

func (r *Runner) build(ctx context.Context, filter catalog.Filter, log *slog.Logger) (*pipeline.Result, error) {
	rc, err := r.deps.Source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}
	defer rc.Close()

	return pipeline.Run(rc, pipeline.Options{
		Groups: r.cfg.Groups,
		Filter: filter,
		Live:   r.cfg.Live,
		Logger: log,
	})
}

func (r *Runner) commit(ctx context.Context, run library.Run, d fingerprint.Digests, c *catalog.Catalog) error {
	if r.deps.Snapshots == nil {
		return r.engine.Commit(ctx, d)
	}
	if err := r.deps.Snapshots.Commit(ctx, run, d, c); err != nil {
		return fmt.Errorf("%w: commit: %w", fingerprint.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *Runner) publish(ctx context.Context, res *Result, log *slog.Logger) {
	if r.deps.Bus == nil {
		return
	}
	if err := r.deps.Bus.PublishAll(ctx, events.FromDelta(res.RunID, res.Delta)); err != nil {
		log.Warn("failed to publish content events", "error", err)
	}
	done := events.NewSyncCompleted(res.RunID, res.Changes, res.Delta, res.Catalog.Counts(), res.Duration)
	if err := r.deps.Bus.Publish(ctx, done); err != nil {
		log.Warn("failed to publish sync event", "error", err)
	}
}

// lock takes the run lock and returns its release function.
func (r *Runner) lock() (func(), error) {
	if r.cfg.LockPath == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(r.cfg.LockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(r.cfg.LockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrRunInProgress
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", "path", r.cfg.LockPath, "error", err)
		}
	}, nil
}

// Watch runs immediately and then every interval until ctx is canceled.
// A failed run is logged and the next tick tries again. Ticks that arrive
// while a run is in progress are coalesced.
func (r *Runner) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", interval)
	}

	g, ctx := errgroup.WithContext(ctx)
	trigger := make(chan struct{}, 1)
	trigger <- struct{}{}

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				select {
				case trigger <- struct{}{}:
				default:
				}
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-trigger:
				if _, err := r.RunOnce(ctx); err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					r.logger.Error("run failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
