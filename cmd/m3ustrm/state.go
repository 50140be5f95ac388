package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/m3ustrm/internal/events"
	"github.com/vmunix/m3ustrm/internal/library"
)

func newStateCommand(ctx *commandContext) *cobra.Command {
	var (
		runLimit   int
		eventLimit int
	)

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show stored digests, recent runs and events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			db, err := library.Open(cmd.Context(), cfg.State.Database)
			if err != nil {
				return fmt.Errorf("open state: %w", err)
			}
			defer db.Close()

			store := library.NewStore(db, ctx.logger(cmd.ErrOrStderr()))
			digests, err := store.ListDigests(cmd.Context())
			if err != nil {
				return err
			}
			runs, err := store.ListRuns(cmd.Context(), runLimit)
			if err != nil {
				return err
			}
			var recent []events.RawEvent
			if eventLimit > 0 {
				if recent, err = events.NewEventLog(db).Recent(cmd.Context(), eventLimit); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if ctx.json() {
				return writeJSON(out, newStateReport(digests, runs, recent))
			}
			printState(out, digests, runs, recent)
			return nil
		},
	}

	cmd.Flags().IntVarP(&runLimit, "runs", "n", 10, "Number of recent runs to show (0 for all)")
	cmd.Flags().IntVar(&eventLimit, "events", 0, "Number of recent events to show")
	return cmd
}

type stateReport struct {
	Digests []digestJSON `json:"digests"`
	Runs    []runJSON    `json:"runs"`
	Events  []eventJSON  `json:"events,omitempty"`
}

type digestJSON struct {
	Section   string    `json:"section"`
	Digest    string    `json:"digest"`
	UpdatedAt time.Time `json:"updated_at"`
}

type runJSON struct {
	ID         string         `json:"id"`
	StartedAt  time.Time      `json:"started_at"`
	DurationMS int64          `json:"duration_ms"`
	Entries    int            `json:"entries"`
	Counts     map[string]int `json:"counts"`
	Changed    []string       `json:"changed"`
	Baseline   bool           `json:"baseline"`
	NewItems   int            `json:"new_items"`
}

type eventJSON struct {
	Type       string    `json:"type"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newStateReport(digests []library.DigestRecord, runs []library.Run, recent []events.RawEvent) stateReport {
	rep := stateReport{
		Digests: make([]digestJSON, 0, len(digests)),
		Runs:    make([]runJSON, 0, len(runs)),
	}
	for _, d := range digests {
		rep.Digests = append(rep.Digests, digestJSON{Section: d.Section, Digest: d.Digest, UpdatedAt: d.UpdatedAt})
	}
	for _, r := range runs {
		changed := r.Changed
		if changed == nil {
			changed = []string{}
		}
		rep.Runs = append(rep.Runs, runJSON{
			ID:         r.ID,
			StartedAt:  r.StartedAt,
			DurationMS: r.Duration().Milliseconds(),
			Entries:    r.Entries,
			Counts: map[string]int{
				"shows":    r.Counts.Shows,
				"episodes": r.Counts.Episodes,
				"movies":   r.Counts.Movies,
				"live":     r.Counts.Live,
			},
			Changed:  changed,
			Baseline: r.Baseline,
			NewItems: r.NewItems,
		})
	}
	for _, e := range recent {
		rep.Events = append(rep.Events, eventJSON{Type: e.EventType, EntityType: e.EntityType, EntityID: e.EntityID, OccurredAt: e.OccurredAt})
	}
	return rep
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printState(w io.Writer, digests []library.DigestRecord, runs []library.Run, recent []events.RawEvent) {
	if len(digests) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return
	}

	rows := make([][]string, 0, len(digests))
	for _, d := range digests {
		digest := d.Digest
		if len(digest) > 16 {
			digest = digest[:16]
		}
		rows = append(rows, []string{d.Section, digest, d.UpdatedAt.Local().Format(time.DateTime)})
	}
	fmt.Fprintln(w, renderTable(w, []string{"Section", "Digest", "Updated"}, rows, nil))

	rows = rows[:0]
	for _, r := range runs {
		changed := "-"
		if r.Baseline {
			changed = "baseline"
		} else if len(r.Changed) > 0 {
			changed = strings.Join(r.Changed, ",")
		}
		rows = append(rows, []string{
			shortID(r.ID),
			r.StartedAt.Local().Format(time.DateTime),
			r.Duration().Round(time.Millisecond).String(),
			strconv.Itoa(r.Counts.Shows),
			strconv.Itoa(r.Counts.Episodes),
			strconv.Itoa(r.Counts.Movies),
			strconv.Itoa(r.Counts.Live),
			changed,
			strconv.Itoa(r.NewItems),
		})
	}
	fmt.Fprintln(w, renderTable(w,
		[]string{"Run", "Started", "Took", "Shows", "Episodes", "Movies", "Live", "Changed", "New"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft, alignRight},
	))

	if len(recent) > 0 {
		rows = rows[:0]
		for _, e := range recent {
			rows = append(rows, []string{e.OccurredAt.Local().Format(time.DateTime), e.EventType, e.EntityID})
		}
		fmt.Fprintln(w, renderTable(w, []string{"When", "Event", "Entity"}, rows, nil))
	}
}
