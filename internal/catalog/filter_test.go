package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection(t *testing.T) {
	t.Run("zero value is unrestricted", func(t *testing.T) {
		var s Selection
		assert.False(t, s.Restricted())
		assert.True(t, s.Admits("anything"))
		assert.Nil(t, s.Keys())
	})

	t.Run("unrestricted", func(t *testing.T) {
		s := Unrestricted()
		assert.False(t, s.Restricted())
		assert.True(t, s.Admits(""))
	})

	t.Run("empty restricted admits nothing", func(t *testing.T) {
		s := Only()
		assert.True(t, s.Restricted())
		assert.False(t, s.Admits("Inception"))
		assert.Empty(t, s.Keys())
	})

	t.Run("keys fold", func(t *testing.T) {
		s := Only("Breaking Bad", "  the office ", "", "BREAKING BAD")
		assert.True(t, s.Admits("breaking bad"))
		assert.True(t, s.Admits("The Office"))
		assert.False(t, s.Admits("Lost"))
		assert.Equal(t, []string{"Breaking Bad", "  the office "}, s.Keys())
	})
}

func TestFilter_Zero(t *testing.T) {
	var f Filter
	assert.True(t, f.AdmitsSeries(SeriesItem{ShowName: "Lost"}))
	assert.True(t, f.AdmitsMovie(MovieItem{Title: "Heat"}))
	assert.True(t, f.AdmitsLive(LiveItem{ChannelKey: "cnn"}))
}

func TestFilter_AdmitsLive(t *testing.T) {
	item := LiveItem{ChannelKey: "tele 5", Name: "Télé 5", DisplayTitle: "Télé 5 HD"}

	tests := []struct {
		name string
		keys []string
		want bool
	}{
		{"channel key", []string{"tele 5"}, true},
		{"name", []string{"TÉLÉ 5"}, true},
		{"display title", []string{"télé 5 hd"}, true},
		{"other", []string{"CNN"}, false},
		{"other quality variant", []string{"Tele 5 SD"}, true},
		{"quality token only", []string{"HD"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Filter{Live: Only(tt.keys...)}
			assert.Equal(t, tt.want, f.AdmitsLive(item))
		})
	}
}

func TestFilter_AdmitsLiveByTVGKey(t *testing.T) {
	item := LiveItem{ChannelKey: "tvg:cnn.us", Name: "CNN", DisplayTitle: "CNN HD"}

	assert.True(t, Filter{Live: Only("cnn (sd)")}.AdmitsLive(item))
	assert.True(t, Filter{Live: Only("tvg:cnn.us")}.AdmitsLive(item))
	assert.False(t, Filter{Live: Only("BBC SD")}.AdmitsLive(item))
}
