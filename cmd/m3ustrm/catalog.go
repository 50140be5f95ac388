package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/internal/config"
	"github.com/vmunix/m3ustrm/internal/pipeline"
	"github.com/vmunix/m3ustrm/internal/selection"
	"github.com/vmunix/m3ustrm/pkg/playlist"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var showItems bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build the catalog from the playlist and print a summary",
		Long: `Build the catalog without touching the state database. Prints item counts,
the entries dropped at each stage and selection keys that match nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rep, err := buildCatalogReport(cmd, cfg, ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ctx.json() {
				return writeJSON(out, rep)
			}
			printCatalogReport(out, rep, showItems)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showItems, "items", false, "List shows, movies and channels")
	return cmd
}

type catalogReport struct {
	Counts      catalog.Counts  `json:"counts"`
	Diagnostics diagnosticsJSON `json:"diagnostics"`
	Unmatched   []unmatchedJSON `json:"unmatched,omitempty"`

	Shows    []string `json:"shows,omitempty"`
	Movies   []string `json:"movies,omitempty"`
	Channels []string `json:"channels,omitempty"`
}

type diagnosticsJSON struct {
	Parsed           int            `json:"parsed"`
	Skipped          map[string]int `json:"skipped,omitempty"`
	Series           int            `json:"series"`
	Movies           int            `json:"movies"`
	Live             int            `json:"live"`
	Unclassified     int            `json:"unclassified"`
	SeriesMisses     int            `json:"series_misses"`
	MovieMisses      int            `json:"movie_misses"`
	EmptyChannelKeys int            `json:"empty_channel_keys"`
	LiveDuplicates   int            `json:"live_duplicates"`
	Filtered         int            `json:"filtered"`
	Overwritten      int            `json:"overwritten"`
}

type unmatchedJSON struct {
	Category   string  `json:"category"`
	Key        string  `json:"key"`
	Suggestion string  `json:"suggestion,omitempty"`
	Score      float64 `json:"score,omitempty"`
}

func buildCatalogReport(cmd *cobra.Command, cfg *config.Config, ctx *commandContext) (*catalogReport, error) {
	data, err := os.ReadFile(cfg.Playlist.Path)
	if err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}
	filter, err := selection.Source{Path: cfg.Selection.Path}.Filter(cmd.Context())
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Groups: cfg.ClassifyGroups(),
		Filter: filter,
		Live:   cfg.LiveOptions(),
		Logger: ctx.logger(cmd.ErrOrStderr()),
	}
	res, err := pipeline.Run(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}

	rep := &catalogReport{
		Counts:      res.Catalog.Counts(),
		Diagnostics: newDiagnosticsJSON(res.Diagnostics),
		Shows:       res.Catalog.ShowNames(),
	}
	for _, k := range res.Catalog.MovieKeys() {
		rep.Movies = append(rep.Movies, k.String())
	}
	for _, item := range res.Catalog.Live {
		rep.Channels = append(rep.Channels, item.DisplayTitle)
	}

	if filter.Series.Restricted() || filter.Movies.Restricted() || filter.Live.Restricted() {
		opts.Filter = catalog.Filter{}
		full, err := pipeline.Run(bytes.NewReader(data), opts)
		if err != nil {
			return nil, err
		}
		for _, m := range selection.Unmatched(filter, full.Catalog) {
			rep.Unmatched = append(rep.Unmatched, unmatchedJSON{
				Category:   m.Category,
				Key:        m.Key,
				Suggestion: m.Suggestion.Title,
				Score:      m.Suggestion.Score,
			})
		}
	}
	return rep, nil
}

func newDiagnosticsJSON(d pipeline.Diagnostics) diagnosticsJSON {
	out := diagnosticsJSON{
		Parsed:           d.Parsed,
		Series:           d.Classified.Series,
		Movies:           d.Classified.Movies,
		Live:             d.Classified.Live,
		Unclassified:     d.Unclassified,
		SeriesMisses:     d.SeriesMisses,
		MovieMisses:      d.MovieMisses,
		EmptyChannelKeys: d.EmptyChannelKeys,
		LiveDuplicates:   d.LiveDuplicates,
		Filtered:         d.Filtered.Total(),
		Overwritten:      d.Overwritten.Total(),
	}
	if len(d.Skipped) > 0 {
		out.Skipped = make(map[string]int, len(d.Skipped))
		for reason, n := range d.Skipped {
			out.Skipped[string(reason)] = n
		}
	}
	return out
}

func printCatalogReport(w io.Writer, rep *catalogReport, showItems bool) {
	counts := [][]string{
		{"Shows", strconv.Itoa(rep.Counts.Shows)},
		{"Episodes", strconv.Itoa(rep.Counts.Episodes)},
		{"Movies", strconv.Itoa(rep.Counts.Movies)},
		{"Live channels", strconv.Itoa(rep.Counts.Live)},
	}
	fmt.Fprintln(w, renderTable(w, []string{"Catalog", "Items"}, counts, []columnAlignment{alignLeft, alignRight}))

	d := rep.Diagnostics
	stages := [][]string{
		{"Parsed entries", strconv.Itoa(d.Parsed)},
	}
	for _, reason := range []playlist.SkipReason{playlist.SkipMissingURL, playlist.SkipOrphanURL, playlist.SkipBadMetadata} {
		if n := d.Skipped[string(reason)]; n > 0 {
			stages = append(stages, []string{"Skipped lines (" + string(reason) + ")", strconv.Itoa(n)})
		}
	}
	stages = append(stages,
		[]string{"Unclassified", strconv.Itoa(d.Unclassified)},
		[]string{"No episode marker", strconv.Itoa(d.SeriesMisses)},
		[]string{"Empty movie title", strconv.Itoa(d.MovieMisses)},
		[]string{"Empty channel key", strconv.Itoa(d.EmptyChannelKeys)},
		[]string{"Live duplicates", strconv.Itoa(d.LiveDuplicates)},
		[]string{"Filtered by selection", strconv.Itoa(d.Filtered)},
		[]string{"Overwritten", strconv.Itoa(d.Overwritten)},
	)
	fmt.Fprintln(w, renderTable(w, []string{"Stage", "Entries"}, stages, []columnAlignment{alignLeft, alignRight}))

	if len(rep.Unmatched) > 0 {
		rows := make([][]string, 0, len(rep.Unmatched))
		for _, u := range rep.Unmatched {
			suggestion := "-"
			if u.Suggestion != "" {
				suggestion = fmt.Sprintf("%s (%.2f)", u.Suggestion, u.Score)
			}
			rows = append(rows, []string{u.Category, u.Key, suggestion})
		}
		fmt.Fprintln(w, "Selection keys without a match:")
		fmt.Fprintln(w, renderTable(w, []string{"Category", "Key", "Did you mean"}, rows, nil))
	}

	if showItems {
		printItems(w, "Shows", rep.Shows)
		printItems(w, "Movies", rep.Movies)
		printItems(w, "Channels", rep.Channels)
	}
}

func printItems(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}
