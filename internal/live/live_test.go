package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/pkg/playlist"
	"github.com/vmunix/m3ustrm/pkg/release"
)

func entry(title, tvgID string) playlist.Entry {
	return playlist.Entry{
		Attributes: map[string]string{
			playlist.AttrTVGID:      tvgID,
			playlist.AttrGroupTitle: "News",
			playlist.AttrTVGLogo:    "http://logo/" + title,
		},
		Title: title,
		URL:   "http://stream/" + title,
	}
}

func TestChannelKey(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"CNN HD", "cnn"},
		{"CNN SD", "cnn"},
		{"cnn (FHD)", "cnn"},
		{"CNN", "cnn"},
		{"Télé 5 HD", "tele 5"},
		{"UK: BBC  One 1080p", "uk: bbc one"},
		{"HD", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ChannelKey(tt.title))
		})
	}
}

func TestItem(t *testing.T) {
	got := Item(entry("CNN HD", "cnn.us"), Options{})
	assert.Equal(t, catalog.LiveItem{
		ChannelKey:   "cnn",
		DisplayTitle: "CNN HD",
		Name:         "CNN",
		GroupTitle:   "News",
		LogoURL:      "http://logo/CNN HD",
		TVGID:        "cnn.us",
		StreamURL:    "http://stream/CNN HD",
		QualityRank:  release.QualityHD,
	}, got)
}

func TestItem_KeyByTVGID(t *testing.T) {
	opts := Options{KeyByTVGID: true}

	assert.Equal(t, "tvg:cnn.us", Item(entry("CNN HD", "CNN.us"), opts).ChannelKey)
	assert.Equal(t, "cnn", Item(entry("CNN HD", ""), opts).ChannelKey, "falls back to title")
	assert.Equal(t, "cnn", Item(entry("CNN HD", "CNN.us"), Options{}).ChannelKey)
}

func TestDedupe_QualityWins(t *testing.T) {
	hd := Item(entry("CNN HD", ""), Options{})
	sd := Item(entry("CNN SD", ""), Options{})

	for name, in := range map[string][]catalog.LiveItem{
		"hd first": {hd, sd},
		"sd first": {sd, hd},
	} {
		t.Run(name, func(t *testing.T) {
			res := Dedupe(in)
			require.Len(t, res.Items, 1)
			assert.Equal(t, "CNN HD", res.Items[0].DisplayTitle)
			assert.Equal(t, 1, res.Duplicates)
		})
	}
}

func TestDedupe_TieKeepsFirst(t *testing.T) {
	a := Item(entry("CNN HD", ""), Options{})
	b := Item(entry("cnn hd", ""), Options{})
	b.StreamURL = "http://other"

	res := Dedupe([]catalog.LiveItem{a, b})
	require.Len(t, res.Items, 1)
	assert.Equal(t, a.StreamURL, res.Items[0].StreamURL)

	res = Dedupe([]catalog.LiveItem{b, a})
	require.Len(t, res.Items, 1)
	assert.Equal(t, b.StreamURL, res.Items[0].StreamURL)
}

func TestDedupe_OrderAndEmptyKeys(t *testing.T) {
	in := []catalog.LiveItem{
		Item(entry("BBC One SD", ""), Options{}),
		Item(entry("HD", ""), Options{}),
		Item(entry("CNN", ""), Options{}),
		Item(entry("BBC One FHD", ""), Options{}),
		Item(entry("Arte", ""), Options{}),
	}

	res := Dedupe(in)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []string{"bbc one", "cnn", "arte"}, []string{
		res.Items[0].ChannelKey, res.Items[1].ChannelKey, res.Items[2].ChannelKey,
	})
	assert.Equal(t, "BBC One FHD", res.Items[0].DisplayTitle)
	assert.Equal(t, 1, res.EmptyKey)
	assert.Equal(t, 1, res.Duplicates)
}

func TestDedupe_InputUntouched(t *testing.T) {
	in := []catalog.LiveItem{
		Item(entry("CNN SD", ""), Options{}),
		Item(entry("CNN HD", ""), Options{}),
	}
	_ = Dedupe(in)
	assert.Equal(t, "CNN SD", in[0].DisplayTitle)
}
