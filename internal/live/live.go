// Package live merges duplicate live channel entries into one stream per
// logical channel, preferring the highest quality.
package live

import (
	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/pkg/playlist"
	"github.com/vmunix/m3ustrm/pkg/release"
)

const tvgKeyPrefix = "tvg:"

// Options controls how channels are keyed.
type Options struct {
	// KeyByTVGID keys channels by their tvg-id when one is present,
	// falling back to the title-derived key.
	KeyByTVGID bool
}

// ChannelKey returns the identity shared by all quality variants of a
// channel title: quality tokens removed, accents dropped, case folded.
// "CNN HD", "cnn (SD)" and "CNN" share the key "cnn".
func ChannelKey(title string) string {
	return release.ChannelKey(title)
}

// Item converts a playlist entry into a live item.
func Item(e playlist.Entry, opts Options) catalog.LiveItem {
	key := ChannelKey(e.Title)
	if opts.KeyByTVGID {
		if id := release.FoldKey(e.TVGID()); id != "" {
			key = tvgKeyPrefix + id
		}
	}
	return catalog.LiveItem{
		ChannelKey:   key,
		DisplayTitle: e.Title,
		Name:         release.StripQuality(e.Title),
		GroupTitle:   e.GroupTitle(),
		LogoURL:      e.TVGLogo(),
		TVGID:        e.TVGID(),
		TVGName:      e.TVGName(),
		StreamURL:    e.URL,
		QualityRank:  release.ParseQuality(e.Title),
	}
}

// Result is the outcome of Dedupe.
type Result struct {
	Items      []catalog.LiveItem // one per channel key, in first-seen order
	Duplicates int                // items merged into an existing key
	EmptyKey   int                // items dropped for an empty key
}

// Dedupe keeps one item per channel key. A higher quality rank replaces the
// current item; on equal rank the first seen is kept. The position of a key
// is fixed by its first occurrence.
func Dedupe(items []catalog.LiveItem) Result {
	var res Result
	pos := make(map[string]int, len(items))
	for _, item := range items {
		if item.ChannelKey == "" {
			res.EmptyKey++
			continue
		}
		i, seen := pos[item.ChannelKey]
		if !seen {
			pos[item.ChannelKey] = len(res.Items)
			res.Items = append(res.Items, item)
			continue
		}
		res.Duplicates++
		if item.QualityRank > res.Items[i].QualityRank {
			res.Items[i] = item
		}
	}
	return res
}
