package catalog

import (
	"cmp"
	"slices"

	"github.com/vmunix/m3ustrm/pkg/release"
)

// Selection is the include set for one category. The zero value is
// unrestricted and admits every key. A restricted selection admits only its
// keys; with no keys it admits nothing.
type Selection struct {
	restricted bool
	keys       map[string]string // folded -> as given
}

// Unrestricted returns a selection that admits every key.
func Unrestricted() Selection {
	return Selection{}
}

// Only returns a restricted selection admitting the given keys. Keys compare
// case-insensitively after trimming; blank keys are ignored.
func Only(keys ...string) Selection {
	s := Selection{restricted: true, keys: make(map[string]string, len(keys))}
	for _, k := range keys {
		if f := release.Fold(k); f != "" {
			if _, dup := s.keys[f]; !dup {
				s.keys[f] = k
			}
		}
	}
	return s
}

// Restricted reports whether the selection limits its category.
func (s Selection) Restricted() bool {
	return s.restricted
}

// Admits reports whether key passes the selection.
func (s Selection) Admits(key string) bool {
	if !s.restricted {
		return true
	}
	_, ok := s.keys[release.Fold(key)]
	return ok
}

// Keys returns the keys of a restricted selection as given, sorted. It is
// nil for an unrestricted selection.
func (s Selection) Keys() []string {
	if !s.restricted {
		return nil
	}
	out := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b string) int {
		return cmp.Compare(release.Fold(a), release.Fold(b))
	})
	return out
}

// Filter is the user's content selection. The zero value admits everything.
type Filter struct {
	Series Selection
	Movies Selection
	Live   Selection
}

// AdmitsSeries matches an episode by show name.
func (f Filter) AdmitsSeries(item SeriesItem) bool {
	return f.Series.Admits(item.ShowName)
}

// AdmitsMovie matches a movie by its clean title.
func (f Filter) AdmitsMovie(item MovieItem) bool {
	return f.Movies.Admits(item.Title)
}

// AdmitsLive matches a channel by channel key, stripped name or display title.
// A key naming another quality variant of the channel, such as "CNN SD" for
// a surviving "CNN HD", matches too.
func (f Filter) AdmitsLive(item LiveItem) bool {
	if !f.Live.Restricted() {
		return true
	}
	if f.Live.Admits(item.ChannelKey) || f.Live.Admits(item.Name) || f.Live.Admits(item.DisplayTitle) {
		return true
	}
	titleKey := release.ChannelKey(item.DisplayTitle)
	for _, k := range f.Live.keys {
		if ck := release.ChannelKey(k); ck != "" && (ck == item.ChannelKey || ck == titleKey) {
			return true
		}
	}
	return false
}
