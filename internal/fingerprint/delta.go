package fingerprint

import (
	"slices"

	"github.com/vmunix/m3ustrm/internal/catalog"
)

// ShowEpisodes lists the new episodes of one show, ordered by season and
// episode.
type ShowEpisodes struct {
	ShowName string
	Episodes []catalog.SeriesItem
}

// Delta is the content added since the previous catalog.
type Delta struct {
	// Baseline marks a first run: there was no previous catalog, the delta
	// is empty and no new-content signal should be sent.
	Baseline bool

	Episodes []ShowEpisodes     // by show name
	Movies   []catalog.MovieItem // by title, then year
	Live     []catalog.LiveItem  // new or changed, in catalog order
}

// Empty reports whether nothing was added.
func (d Delta) Empty() bool {
	return len(d.Episodes) == 0 && len(d.Movies) == 0 && len(d.Live) == 0
}

// Count returns the number of added items.
func (d Delta) Count() int {
	n := len(d.Movies) + len(d.Live)
	for _, s := range d.Episodes {
		n += len(s.Episodes)
	}
	return n
}

// ComputeDelta returns what cur adds over prev: episodes and movies whose
// key is new, and live channels that are new or whose stream changed.
// Removed items are not reported. A nil prev yields an empty baseline
// delta.
func ComputeDelta(prev, cur *catalog.Catalog) Delta {
	if prev == nil {
		return Delta{Baseline: true}
	}
	var d Delta

	for _, show := range cur.ShowNames() {
		var added []catalog.SeriesItem
		for _, season := range cur.Seasons(show) {
			for _, e := range cur.Episodes(show, season) {
				if !hasEpisode(prev, e.Key()) {
					added = append(added, e)
				}
			}
		}
		if len(added) > 0 {
			d.Episodes = append(d.Episodes, ShowEpisodes{ShowName: show, Episodes: added})
		}
	}

	for _, k := range cur.MovieKeys() {
		if _, ok := prev.Movies[k]; !ok {
			d.Movies = append(d.Movies, cur.Movies[k])
		}
	}

	before := prev.LiveByKey()
	for _, item := range cur.Live {
		old, ok := before[item.ChannelKey]
		if !ok || liveLine(old) != liveLine(item) {
			d.Live = append(d.Live, item)
		}
	}
	return d
}

func hasEpisode(c *catalog.Catalog, k catalog.EpisodeKey) bool {
	return slices.ContainsFunc(c.Series[k.ShowName][k.Season], func(e catalog.SeriesItem) bool {
		return e.Episode == k.Episode
	})
}
