package catalog

import "slices"

// CategoryCounts holds a count per catalog category.
type CategoryCounts struct {
	Series int
	Movies int
	Live   int
}

// Total returns the sum over all categories.
func (c CategoryCounts) Total() int {
	return c.Series + c.Movies + c.Live
}

// BuildStats reports items dropped while building a catalog.
type BuildStats struct {
	Filtered    CategoryCounts // excluded by the selection filter
	Overwritten CategoryCounts // replaced by a later duplicate
}

// Build assembles a catalog from detected items. The filter is applied
// first. Episodes are grouped by show and season and ordered by episode
// number; a repeated episode or movie replaces the earlier one. Live items
// are expected to be deduplicated already and keep their input order.
//
// The input slices are not modified.
func Build(series []SeriesItem, movies []MovieItem, live []LiveItem, f Filter) (*Catalog, BuildStats) {
	c := New()
	var stats BuildStats

	// Index of each episode within its season slice, for overwrites.
	index := make(map[EpisodeKey]int)
	for _, item := range series {
		if !f.AdmitsSeries(item) {
			stats.Filtered.Series++
			continue
		}
		seasons := c.Series[item.ShowName]
		if seasons == nil {
			seasons = make(map[int][]SeriesItem)
			c.Series[item.ShowName] = seasons
		}
		if i, ok := index[item.Key()]; ok {
			seasons[item.Season][i] = item
			stats.Overwritten.Series++
			continue
		}
		index[item.Key()] = len(seasons[item.Season])
		seasons[item.Season] = append(seasons[item.Season], item)
	}
	for _, seasons := range c.Series {
		for _, eps := range seasons {
			slices.SortStableFunc(eps, func(a, b SeriesItem) int {
				return a.Episode - b.Episode
			})
		}
	}

	for _, item := range movies {
		if !f.AdmitsMovie(item) {
			stats.Filtered.Movies++
			continue
		}
		if _, ok := c.Movies[item.Key()]; ok {
			stats.Overwritten.Movies++
		}
		c.Movies[item.Key()] = item
	}

	c.Live = make([]LiveItem, 0, len(live))
	for _, item := range live {
		if !f.AdmitsLive(item) {
			stats.Filtered.Live++
			continue
		}
		c.Live = append(c.Live, item)
	}

	return c, stats
}
