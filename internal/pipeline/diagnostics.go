package pipeline

import (
	"log/slog"
	"slices"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/pkg/playlist"
)

// Diagnostics counts what a run kept and dropped at each stage.
type Diagnostics struct {
	Parsed  int                         // entries with metadata and URL
	Skipped map[playlist.SkipReason]int // malformed lines by reason

	Classified   catalog.CategoryCounts
	Unclassified int

	SeriesMisses int // series entries without an episode marker
	MovieMisses  int // movie entries with an empty title

	EmptyChannelKeys int
	LiveDuplicates   int

	Filtered    catalog.CategoryCounts
	Overwritten catalog.CategoryCounts
}

// Dropped returns the number of parsed entries that did not reach the
// catalog.
func (d Diagnostics) Dropped() int {
	return d.Unclassified + d.SeriesMisses + d.MovieMisses + d.EmptyChannelKeys +
		d.LiveDuplicates + d.Filtered.Total() + d.Overwritten.Total()
}

// LogValue implements slog.LogValuer.
func (d Diagnostics) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("parsed", d.Parsed),
		slog.Int("series", d.Classified.Series),
		slog.Int("movies", d.Classified.Movies),
		slog.Int("live", d.Classified.Live),
		slog.Int("unclassified", d.Unclassified),
		slog.Int("series_misses", d.SeriesMisses),
		slog.Int("movie_misses", d.MovieMisses),
		slog.Int("empty_channel_keys", d.EmptyChannelKeys),
		slog.Int("live_duplicates", d.LiveDuplicates),
		slog.Int("filtered", d.Filtered.Total()),
		slog.Int("overwritten", d.Overwritten.Total()),
	}
	if len(d.Skipped) > 0 {
		reasons := make([]string, 0, len(d.Skipped))
		for r := range d.Skipped {
			reasons = append(reasons, string(r))
		}
		slices.Sort(reasons)
		skipped := make([]slog.Attr, 0, len(reasons))
		for _, r := range reasons {
			skipped = append(skipped, slog.Int(r, d.Skipped[playlist.SkipReason(r)]))
		}
		attrs = append(attrs, slog.Attr{Key: "skipped", Value: slog.GroupValue(skipped...)})
	}
	return slog.GroupValue(attrs...)
}
