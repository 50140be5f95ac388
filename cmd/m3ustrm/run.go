package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/m3ustrm/internal/config"
	"github.com/vmunix/m3ustrm/internal/events"
	"github.com/vmunix/m3ustrm/internal/handlers"
	"github.com/vmunix/m3ustrm/internal/library"
	"github.com/vmunix/m3ustrm/internal/runner"
	"github.com/vmunix/m3ustrm/internal/selection"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sync the playlist once, or repeatedly with --watch",
		Long: `Build the catalog from the configured playlist, compare it with the last
run, record the result and announce new episodes, movies and channels.

The first run records a baseline and announces nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger(cmd.ErrOrStderr())

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := library.Open(runCtx, cfg.State.Database)
			if err != nil {
				return fmt.Errorf("open state: %w", err)
			}
			defer db.Close()

			bus := events.NewBus(events.NewEventLog(db), logger)
			defer bus.Close()
			announce := handlers.NewAnnounceHandler(bus, handlers.LogNotifier{Logger: logger}, logger)

			r := newRunner(cfg, library.NewStore(db, logger), bus, logger)
			if watch && !cmd.Flags().Changed("interval") {
				interval = cfg.Schedule.Interval
			}

			var res *runner.Result
			g, gctx := errgroup.WithContext(runCtx)
			g.Go(func() error { return announce.Start(gctx) })
			g.Go(func() error {
				// Closing the bus lets the handler drain and return.
				defer bus.Close()
				if watch {
					logger.Info("watching playlist", "path", cfg.Playlist.Path, "interval", interval)
					return r.Watch(gctx, interval)
				}
				var err error
				res, err = r.RunOnce(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				if errors.Is(err, context.Canceled) && runCtx.Err() != nil {
					return nil
				}
				return err
			}
			if watch {
				return nil
			}

			out := cmd.OutOrStdout()
			if ctx.json() {
				return writeJSON(out, newRunReport(res))
			}
			printRunResult(out, res)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running on the configured schedule")
	cmd.Flags().DurationVar(&interval, "interval", time.Hour, "Pause between runs with --watch (default from config)")
	return cmd
}

func newRunner(cfg *config.Config, store *library.Store, bus *events.Bus, logger *slog.Logger) *runner.Runner {
	return runner.NewRunner(
		runner.Config{
			Groups:   cfg.ClassifyGroups(),
			Live:     cfg.LiveOptions(),
			LockPath: cfg.State.Lock,
		},
		runner.Deps{
			Source:    runner.FileSource{Path: cfg.Playlist.Path},
			Digests:   store,
			Snapshots: store,
			Filters:   selection.Source{Path: cfg.Selection.Path},
			Bus:       bus,
		},
		logger,
	)
}

type runReport struct {
	RunID    string   `json:"run_id"`
	Baseline bool     `json:"baseline"`
	Changed  []string `json:"changed"`
	NewItems int      `json:"new_items"`
	Shows    int      `json:"shows"`
	Episodes int      `json:"episodes"`
	Movies   int      `json:"movies"`
	Live     int      `json:"live"`
	Dropped  int      `json:"dropped"`
	Duration string   `json:"duration"`
}

func newRunReport(res *runner.Result) runReport {
	counts := res.Catalog.Counts()
	changed := res.Changes.Sections()
	if changed == nil {
		changed = []string{}
	}
	return runReport{
		RunID:    res.RunID,
		Baseline: res.Delta.Baseline,
		Changed:  changed,
		NewItems: res.Delta.Count(),
		Shows:    counts.Shows,
		Episodes: counts.Episodes,
		Movies:   counts.Movies,
		Live:     counts.Live,
		Dropped:  res.Diagnostics.Dropped(),
		Duration: res.Duration.Round(time.Millisecond).String(),
	}
}

func printRunResult(w io.Writer, res *runner.Result) {
	r := newRunReport(res)
	changed := "none"
	if len(r.Changed) > 0 {
		changed = strings.Join(r.Changed, ", ")
	}

	rows := [][]string{
		{"Run", r.RunID},
		{"Shows", strconv.Itoa(r.Shows)},
		{"Episodes", strconv.Itoa(r.Episodes)},
		{"Movies", strconv.Itoa(r.Movies)},
		{"Live", strconv.Itoa(r.Live)},
		{"Dropped entries", strconv.Itoa(r.Dropped)},
		{"Changed", changed},
		{"New items", strconv.Itoa(r.NewItems)},
		{"Duration", r.Duration},
	}
	fmt.Fprintln(w, renderTable(w, []string{"Field", "Value"}, rows, nil))
	if r.Baseline {
		fmt.Fprintln(w, "First run: baseline recorded, nothing announced.")
	}
}
