// Package fingerprint computes stable per-section digests of a catalog,
// compares them with the previous run and derives the new-content delta.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"

	"github.com/vmunix/m3ustrm/internal/catalog"
)

// Section names used for persisted digests.
const (
	SectionSeries = "series"
	SectionMovies = "movies"
	SectionLive   = "live"
)

// Digests holds one digest per catalog section.
type Digests struct {
	Series string
	Movies string
	Live   string
}

// IsZero reports whether no digest is set.
func (d Digests) IsZero() bool {
	return d == Digests{}
}

// Changes reports which sections differ from prev.
func (d Digests) Changes(prev Digests) Changes {
	return Changes{
		Series: HasChanged(prev.Series, d.Series),
		Movies: HasChanged(prev.Movies, d.Movies),
		Live:   HasChanged(prev.Live, d.Live),
	}
}

// Changes flags the catalog sections whose digest changed.
type Changes struct {
	Series bool
	Movies bool
	Live   bool
}

// Any reports whether at least one section changed.
func (c Changes) Any() bool {
	return c.Series || c.Movies || c.Live
}

// Sections returns the names of the changed sections.
func (c Changes) Sections() []string {
	var out []string
	if c.Series {
		out = append(out, SectionSeries)
	}
	if c.Movies {
		out = append(out, SectionMovies)
	}
	if c.Live {
		out = append(out, SectionLive)
	}
	return out
}

// HasChanged compares two digests.
func HasChanged(prev, cur string) bool {
	return prev != cur
}

// Compute digests every section of c.
func Compute(c *catalog.Catalog) Digests {
	return Digests{
		Series: DigestSeries(c),
		Movies: DigestMovies(c),
		Live:   DigestLive(c),
	}
}

// DigestSeries digests the series tree. Episodes are serialized in
// show, season, episode order.
func DigestSeries(c *catalog.Catalog) string {
	var lines []string
	for show, seasons := range c.Series {
		for _, eps := range seasons {
			for _, e := range eps {
				lines = append(lines, episodeLine(show, e))
			}
		}
	}
	return digestLines(lines)
}

// DigestMovies digests the movie set.
func DigestMovies(c *catalog.Catalog) string {
	lines := make([]string, 0, len(c.Movies))
	for k, m := range c.Movies {
		lines = append(lines, movieLine(k, m))
	}
	return digestLines(lines)
}

// DigestLive digests the live channels. Channel order does not affect the
// result.
func DigestLive(c *catalog.Catalog) string {
	lines := make([]string, 0, len(c.Live))
	for _, item := range c.Live {
		lines = append(lines, liveLine(item))
	}
	return digestLines(lines)
}

// Each line starts with its key fields so that sorting the lines sorts by
// key. Fields are quoted to keep separators unambiguous.
func episodeLine(show string, e catalog.SeriesItem) string {
	return fields(show, pad(e.Season), pad(e.Episode), e.StreamURL)
}

func movieLine(k catalog.MovieKey, m catalog.MovieItem) string {
	year := ""
	if k.HasYear {
		year = pad(k.Year)
	}
	return fields(k.Title, year, m.StreamURL)
}

func liveLine(item catalog.LiveItem) string {
	return fields(item.ChannelKey, item.StreamURL, item.DisplayTitle, item.GroupTitle, item.LogoURL, item.QualityRank.String())
}

// pad zero-fills numbers so they sort numerically as text.
func pad(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 6 {
		s = strings.Repeat("0", 6-len(s)) + s
	}
	return s
}

func fields(vals ...string) string {
	var b strings.Builder
	for i, v := range vals {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(strconv.Quote(v))
	}
	return b.String()
}

func digestLines(lines []string) string {
	slices.Sort(lines)
	h := sha256.New()
	for _, l := range lines {
		h.Write([]byte(l))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
