// Package catalog holds the typed output of a playlist run: series episodes
// grouped by show and season, movies keyed by title and year, and the
// deduplicated live channel list.
package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/vmunix/m3ustrm/pkg/release"
)

// SeriesItem is one episode of a show.
type SeriesItem struct {
	ShowName  string
	Season    int
	Episode   int
	StreamURL string

	Title   string // playlist title the episode was detected from
	TVGID   string
	LogoURL string
}

// EpisodeKey identifies an episode within a catalog.
type EpisodeKey struct {
	ShowName string
	Season   int
	Episode  int
}

// Key returns the episode's identity.
func (s SeriesItem) Key() EpisodeKey {
	return EpisodeKey{ShowName: s.ShowName, Season: s.Season, Episode: s.Episode}
}

// MovieItem is one film. Year is nil when the title carried none.
type MovieItem struct {
	Title     string
	Year      *int
	StreamURL string
	LogoURL   string
}

// MovieKey identifies a movie. HasYear separates "Foo" from "Foo (0000)".
type MovieKey struct {
	Title   string
	Year    int
	HasYear bool
}

// YearKey returns the key of a movie released in year.
func YearKey(title string, year int) MovieKey {
	return MovieKey{Title: title, Year: year, HasYear: true}
}

// Key returns the movie's (title, year) identity.
func (m MovieItem) Key() MovieKey {
	if m.Year == nil {
		return MovieKey{Title: m.Title}
	}
	return YearKey(m.Title, *m.Year)
}

// YearPtr returns the key's year, or nil when it has none.
func (k MovieKey) YearPtr() *int {
	if !k.HasYear {
		return nil
	}
	y := k.Year
	return &y
}

// String formats the key as "Title (Year)", or just the title.
func (k MovieKey) String() string {
	if !k.HasYear {
		return k.Title
	}
	return fmt.Sprintf("%s (%04d)", k.Title, k.Year)
}

// Yearless keys sort before dated keys of the same title.
func compareMovieKeys(a, b MovieKey) int {
	if c := cmp.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	if a.HasYear != b.HasYear {
		if a.HasYear {
			return 1
		}
		return -1
	}
	return cmp.Compare(a.Year, b.Year)
}

// LiveItem is the surviving stream for one logical channel.
type LiveItem struct {
	ChannelKey   string
	DisplayTitle string
	Name         string // DisplayTitle without quality tokens
	GroupTitle   string
	LogoURL      string
	TVGID        string
	TVGName      string
	StreamURL    string
	QualityRank  release.Quality
}

// Catalog is the result of one build. It is not modified after Build
// returns; a new run builds a new Catalog.
type Catalog struct {
	Series map[string]map[int][]SeriesItem
	Movies map[MovieKey]MovieItem
	Live   []LiveItem
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		Series: make(map[string]map[int][]SeriesItem),
		Movies: make(map[MovieKey]MovieItem),
	}
}

// ShowNames returns the show names in sorted order.
func (c *Catalog) ShowNames() []string {
	names := make([]string, 0, len(c.Series))
	for name := range c.Series {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Seasons returns the season numbers of a show in ascending order.
func (c *Catalog) Seasons(show string) []int {
	seasons := make([]int, 0, len(c.Series[show]))
	for s := range c.Series[show] {
		seasons = append(seasons, s)
	}
	slices.Sort(seasons)
	return seasons
}

// Episodes returns the episodes of one season, ordered by episode number.
func (c *Catalog) Episodes(show string, season int) []SeriesItem {
	return c.Series[show][season]
}

// MovieKeys returns the movie keys sorted by title, then year.
func (c *Catalog) MovieKeys() []MovieKey {
	keys := make([]MovieKey, 0, len(c.Movies))
	for k := range c.Movies {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareMovieKeys)
	return keys
}

// LiveByKey indexes the live channels by channel key.
func (c *Catalog) LiveByKey() map[string]LiveItem {
	m := make(map[string]LiveItem, len(c.Live))
	for _, item := range c.Live {
		m[item.ChannelKey] = item
	}
	return m
}

// Counts summarizes catalog size.
type Counts struct {
	Shows    int `json:"shows"`
	Episodes int `json:"episodes"`
	Movies   int `json:"movies"`
	Live     int `json:"live"`
}

// Counts returns the number of shows, episodes, movies and live channels.
func (c *Catalog) Counts() Counts {
	n := Counts{Shows: len(c.Series), Movies: len(c.Movies), Live: len(c.Live)}
	for _, seasons := range c.Series {
		for _, eps := range seasons {
			n.Episodes += len(eps)
		}
	}
	return n
}
