// Package pipeline turns playlist text into a catalog: parse, classify,
// detect, deduplicate and build.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/internal/classify"
	"github.com/vmunix/m3ustrm/internal/live"
	"github.com/vmunix/m3ustrm/pkg/playlist"
	"github.com/vmunix/m3ustrm/pkg/release"
)

// Options configures a pipeline run.
type Options struct {
	Groups classify.Groups
	Filter catalog.Filter
	Live   live.Options

	// Logger receives per-entry drop reasons at debug level.
	// Nil uses slog.Default().
	Logger *slog.Logger
}

// Result is the output of Run.
type Result struct {
	Catalog     *catalog.Catalog
	Diagnostics Diagnostics
}

// Run reads a playlist from r and builds the catalog. Malformed and
// unrecognized entries are dropped and counted in the diagnostics; only a
// read error fails the run.
func Run(r io.Reader, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "pipeline")

	var (
		diag   Diagnostics
		series []catalog.SeriesItem
		movies []catalog.MovieItem
		items  []catalog.LiveItem
	)

	p := playlist.NewParser(r)
	for e := range p.Entries() {
		switch classify.Classify(e, opts.Groups) {
		case classify.Series:
			diag.Classified.Series++
			m, ok := release.DetectEpisode(e.Title)
			if !ok {
				diag.SeriesMisses++
				logger.Debug("no episode marker", "line", e.Line, "title", e.Title)
				continue
			}
			series = append(series, catalog.SeriesItem{
				ShowName:  m.ShowName,
				Season:    m.Season,
				Episode:   m.Episode,
				StreamURL: e.URL,
				Title:     e.Title,
				TVGID:     e.TVGID(),
				LogoURL:   e.TVGLogo(),
			})
		case classify.Movie:
			diag.Classified.Movies++
			title, year := release.DetectYear(e.Title)
			if title == "" {
				diag.MovieMisses++
				logger.Debug("movie without title", "line", e.Line)
				continue
			}
			movies = append(movies, catalog.MovieItem{
				Title:     title,
				Year:      year,
				StreamURL: e.URL,
				LogoURL:   e.TVGLogo(),
			})
		case classify.Live:
			diag.Classified.Live++
			items = append(items, live.Item(e, opts.Live))
		default:
			diag.Unclassified++
			logger.Debug("unclassified entry", "line", e.Line, "group", e.GroupTitle())
		}
	}
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}

	stats := p.Stats()
	diag.Parsed = stats.Entries
	diag.Skipped = stats.Skipped

	deduped := live.Dedupe(items)
	diag.EmptyChannelKeys = deduped.EmptyKey
	diag.LiveDuplicates = deduped.Duplicates

	c, bs := catalog.Build(series, movies, deduped.Items, opts.Filter)
	diag.Filtered = bs.Filtered
	diag.Overwritten = bs.Overwritten

	return &Result{Catalog: c, Diagnostics: diag}, nil
}
