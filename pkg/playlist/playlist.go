// Package playlist parses extended M3U playlists into raw entries.
package playlist

// Well-known #EXTINF attribute names.
const (
	AttrTVGID      = "tvg-id"
	AttrTVGName    = "tvg-name"
	AttrTVGLogo    = "tvg-logo"
	AttrGroupTitle = "group-title"
)

// Entry is one playlist item as written: the attributes and title of an
// #EXTINF line plus the stream URL on the line that follows it.
type Entry struct {
	Attributes map[string]string
	Title      string
	URL        string
	Duration   string // raw duration token, "-1" for live streams
	Line       int    // line number of the #EXTINF line
}

// Attr returns the named attribute or "" when absent.
func (e Entry) Attr(name string) string {
	return e.Attributes[name]
}

func (e Entry) TVGID() string      { return e.Attr(AttrTVGID) }
func (e Entry) TVGName() string    { return e.Attr(AttrTVGName) }
func (e Entry) TVGLogo() string    { return e.Attr(AttrTVGLogo) }
func (e Entry) GroupTitle() string { return e.Attr(AttrGroupTitle) }

// SkipReason explains why a line was not turned into an entry.
type SkipReason string

const (
	// SkipMissingURL is an #EXTINF line with no URL before the next #EXTINF or EOF.
	SkipMissingURL SkipReason = "missing_url"
	// SkipOrphanURL is a URL line with no preceding #EXTINF.
	SkipOrphanURL SkipReason = "orphan_url"
	// SkipBadMetadata is an #EXTINF line that could not be parsed.
	SkipBadMetadata SkipReason = "bad_metadata"
)

// Stats summarizes a parse.
type Stats struct {
	Entries int
	Skipped map[SkipReason]int
}

// SkippedTotal returns the number of skipped lines across all reasons.
func (s Stats) SkippedTotal() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}
