// Package release extracts structured metadata from free-text playlist
// titles: season/episode markers, trailing release years, and the quality
// tokens providers append to live channel names.
package release

// Quality ranks a stream's resolution tier. Higher is better.
type Quality int

const (
	QualityUnknown Quality = iota
	QualitySD
	QualityHD
	QualityFHD
	QualityUHD
)

// unknownStr is the string representation for unknown values.
const unknownStr = "unknown"

func (q Quality) String() string {
	switch q {
	case QualitySD:
		return "SD"
	case QualityHD:
		return "HD"
	case QualityFHD:
		return "FHD"
	case QualityUHD:
		return "UHD"
	default:
		return unknownStr
	}
}

// EpisodeMatch is a season/episode marker found in a title.
type EpisodeMatch struct {
	ShowName string
	Season   int
	Episode  int
	Pattern  string // name of the matcher that fired
}
