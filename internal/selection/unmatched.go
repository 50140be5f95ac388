package selection

import (
	"slices"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/pkg/release"
)

// Miss is an include key that matched nothing in the catalog.
type Miss struct {
	Category   string // "series", "movies" or "live"
	Key        string
	Suggestion release.MatchResult // nearest candidate, if any is close
}

// Unmatched reports the include keys of f that admit no item of c. The
// catalog should be built without the filter, otherwise every candidate
// already passed it.
func Unmatched(f catalog.Filter, c *catalog.Catalog) []Miss {
	var misses []Miss
	misses = append(misses, unmatched("series", f.Series, c.ShowNames(), nil)...)
	misses = append(misses, unmatched("movies", f.Movies, movieTitles(c), nil)...)
	misses = append(misses, unmatched("live", f.Live, liveNames(c), func(only catalog.Selection) bool {
		return slices.ContainsFunc(c.Live, catalog.Filter{Live: only}.AdmitsLive)
	})...)
	return misses
}

// unmatched reports the keys of s that admit none of candidates. When
// matches is set it decides instead whether a single-key selection matches.
func unmatched(category string, s catalog.Selection, candidates []string, matches func(catalog.Selection) bool) []Miss {
	if !s.Restricted() {
		return nil
	}
	if matches == nil {
		matches = func(only catalog.Selection) bool {
			return slices.ContainsFunc(candidates, only.Admits)
		}
	}
	var misses []Miss
	for _, key := range s.Keys() {
		if !matches(catalog.Only(key)) {
			misses = append(misses, Miss{Category: category, Key: key, Suggestion: Suggest(key, candidates)})
		}
	}
	return misses
}

// Suggest returns the candidate closest to key by Jaro-Winkler similarity.
// The result carries no title when nothing is reasonably close.
func Suggest(key string, candidates []string) release.MatchResult {
	return release.MatchTitle(key, candidates)
}

func movieTitles(c *catalog.Catalog) []string {
	keys := c.MovieKeys()
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k.Title] {
			seen[k.Title] = true
			out = append(out, k.Title)
		}
	}
	return out
}

// liveNames lists the names a live include key can match on.
func liveNames(c *catalog.Catalog) []string {
	out := make([]string, 0, len(c.Live)*3)
	for _, item := range c.Live {
		out = append(out, item.Name)
		if item.DisplayTitle != item.Name {
			out = append(out, item.DisplayTitle)
		}
		out = append(out, item.ChannelKey)
	}
	return out
}
