package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectYear(t *testing.T) {
	tests := []struct {
		title string
		clean string
		year  int // 0 means no year expected
	}{
		{"Inception (2010)", "Inception", 2010},
		{"Inception   (2010)  ", "Inception", 2010},
		{"Blade Runner 2049 (2017)", "Blade Runner 2049", 2017},
		{"Future Movie (3021)", "Future Movie", 3021},
		{"Ancient (0042)", "Ancient", 42},
		{"Inception", "Inception", 0},
		{"Inception 2010", "Inception 2010", 0},
		{"Inception (2010) Extended", "Inception (2010) Extended", 0},
		{"Short (99)", "Short (99)", 0},
		{"(2010)", "(2010)", 0},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			clean, year := DetectYear(tt.title)
			assert.Equal(t, tt.clean, clean)
			if tt.year == 0 {
				assert.Nil(t, year)
				return
			}
			require.NotNil(t, year)
			assert.Equal(t, tt.year, *year)
		})
	}
}
