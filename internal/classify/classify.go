// Package classify assigns playlist entries to a catalog category by their
// group title.
package classify

import (
	"sort"

	"github.com/vmunix/m3ustrm/pkg/playlist"
	"github.com/vmunix/m3ustrm/pkg/release"
)

// Category is the catalog section an entry belongs to.
type Category int

const (
	Unclassified Category = iota
	Series
	Movie
	Live
)

func (c Category) String() string {
	switch c {
	case Series:
		return "series"
	case Movie:
		return "movie"
	case Live:
		return "live"
	default:
		return "unclassified"
	}
}

// Groups holds the normalized group titles configured for each category.
// The zero value classifies everything as Unclassified.
type Groups struct {
	series map[string]struct{}
	movies map[string]struct{}
	live   map[string]struct{}
}

// NewGroups normalizes the configured group titles. Names are trimmed and
// Unicode case-folded; blank names are ignored.
func NewGroups(series, movies, live []string) Groups {
	return Groups{
		series: groupSet(series),
		movies: groupSet(movies),
		live:   groupSet(live),
	}
}

func groupSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if k := release.Fold(n); k != "" {
			set[k] = struct{}{}
		}
	}
	return set
}

// Classify returns the category for a group title. A group listed in more
// than one category resolves as Series, then Movie, then Live.
func (g Groups) Classify(group string) Category {
	k := release.Fold(group)
	if k == "" {
		return Unclassified
	}
	if _, ok := g.series[k]; ok {
		return Series
	}
	if _, ok := g.movies[k]; ok {
		return Movie
	}
	if _, ok := g.live[k]; ok {
		return Live
	}
	return Unclassified
}

// Overlaps returns the normalized group titles configured in more than one
// category, sorted.
func (g Groups) Overlaps() []string {
	counts := make(map[string]int)
	for _, set := range []map[string]struct{}{g.series, g.movies, g.live} {
		for k := range set {
			counts[k]++
		}
	}
	var out []string
	for k, n := range counts {
		if n > 1 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Empty reports whether no group is configured for any category.
func (g Groups) Empty() bool {
	return len(g.series) == 0 && len(g.movies) == 0 && len(g.live) == 0
}

// Classify returns the category of a playlist entry by its group title.
func Classify(e playlist.Entry, g Groups) Category {
	return g.Classify(e.GroupTitle())
}
