package library

import (
	"context"
	"fmt"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/pkg/release"
)

// LoadSnapshot returns the catalog stored by the last commit, or nil when
// nothing has been committed yet.
func (s *Store) LoadSnapshot(ctx context.Context) (*catalog.Catalog, error) {
	return loadSnapshot(ctx, s.db)
}

func loadSnapshot(ctx context.Context, q querier) (*catalog.Catalog, error) {
	var committed int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(1) FROM fingerprints`).Scan(&committed); err != nil {
		return nil, fmt.Errorf("check snapshot: %w", mapSQLiteError(err))
	}
	if committed == 0 {
		return nil, nil
	}

	c := catalog.New()
	if err := loadEpisodes(ctx, q, c); err != nil {
		return nil, err
	}
	if err := loadMovies(ctx, q, c); err != nil {
		return nil, err
	}
	if err := loadLive(ctx, q, c); err != nil {
		return nil, err
	}
	return c, nil
}

func loadEpisodes(ctx context.Context, q querier, c *catalog.Catalog) error {
	rows, err := q.QueryContext(ctx, `
		SELECT show_name, season, episode, stream_url, title, tvg_id, logo_url
		FROM series_episodes
		ORDER BY show_name, season, episode`)
	if err != nil {
		return fmt.Errorf("query episodes: %w", mapSQLiteError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var e catalog.SeriesItem
		if err := rows.Scan(&e.ShowName, &e.Season, &e.Episode, &e.StreamURL, &e.Title, &e.TVGID, &e.LogoURL); err != nil {
			return fmt.Errorf("scan episode: %w", err)
		}
		seasons := c.Series[e.ShowName]
		if seasons == nil {
			seasons = make(map[int][]catalog.SeriesItem)
			c.Series[e.ShowName] = seasons
		}
		seasons[e.Season] = append(seasons[e.Season], e)
	}
	return rows.Err()
}

func loadMovies(ctx context.Context, q querier, c *catalog.Catalog) error {
	rows, err := q.QueryContext(ctx, `SELECT title, has_year, year, stream_url, logo_url FROM movies`)
	if err != nil {
		return fmt.Errorf("query movies: %w", mapSQLiteError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var m catalog.MovieItem
		var k catalog.MovieKey
		if err := rows.Scan(&k.Title, &k.HasYear, &k.Year, &m.StreamURL, &m.LogoURL); err != nil {
			return fmt.Errorf("scan movie: %w", err)
		}
		m.Title, m.Year = k.Title, k.YearPtr()
		c.Movies[m.Key()] = m
	}
	return rows.Err()
}

func loadLive(ctx context.Context, q querier, c *catalog.Catalog) error {
	rows, err := q.QueryContext(ctx, `
		SELECT channel_key, display_title, name, group_title, logo_url, tvg_id, tvg_name, stream_url, quality_rank
		FROM live_channels
		ORDER BY position`)
	if err != nil {
		return fmt.Errorf("query live channels: %w", mapSQLiteError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var l catalog.LiveItem
		var rank int
		if err := rows.Scan(&l.ChannelKey, &l.DisplayTitle, &l.Name, &l.GroupTitle, &l.LogoURL, &l.TVGID, &l.TVGName, &l.StreamURL, &rank); err != nil {
			return fmt.Errorf("scan live channel: %w", err)
		}
		l.QualityRank = release.Quality(rank)
		c.Live = append(c.Live, l)
	}
	return rows.Err()
}

// ReplaceSnapshot swaps the stored catalog for c within a transaction.
func (t *Tx) ReplaceSnapshot(ctx context.Context, c *catalog.Catalog) error {
	return replaceSnapshot(ctx, t.tx, c)
}

func replaceSnapshot(ctx context.Context, q querier, c *catalog.Catalog) error {
	for _, table := range []string{"series_episodes", "movies", "live_channels"} {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, mapSQLiteError(err))
		}
	}

	for _, show := range c.ShowNames() {
		for _, season := range c.Seasons(show) {
			for _, e := range c.Episodes(show, season) {
				_, err := q.ExecContext(ctx, `
					INSERT INTO series_episodes (show_name, season, episode, stream_url, title, tvg_id, logo_url)
					VALUES (?, ?, ?, ?, ?, ?, ?)`,
					show, e.Season, e.Episode, e.StreamURL, e.Title, e.TVGID, e.LogoURL,
				)
				if err != nil {
					return fmt.Errorf("insert episode %s S%02dE%02d: %w", show, e.Season, e.Episode, mapSQLiteError(err))
				}
			}
		}
	}

	for _, k := range c.MovieKeys() {
		m := c.Movies[k]
		_, err := q.ExecContext(ctx, `
			INSERT INTO movies (title, has_year, year, stream_url, logo_url) VALUES (?, ?, ?, ?, ?)`,
			k.Title, k.HasYear, k.Year, m.StreamURL, m.LogoURL,
		)
		if err != nil {
			return fmt.Errorf("insert movie %s: %w", k, mapSQLiteError(err))
		}
	}

	for i, l := range c.Live {
		_, err := q.ExecContext(ctx, `
			INSERT INTO live_channels (channel_key, position, display_title, name, group_title, logo_url, tvg_id, tvg_name, stream_url, quality_rank)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ChannelKey, i, l.DisplayTitle, l.Name, l.GroupTitle, l.LogoURL, l.TVGID, l.TVGName, l.StreamURL, int(l.QualityRank),
		)
		if err != nil {
			return fmt.Errorf("insert live channel %q: %w", l.ChannelKey, mapSQLiteError(err))
		}
	}
	return nil
}
