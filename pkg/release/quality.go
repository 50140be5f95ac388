package release

import (
	"regexp"
	"strings"
)

// qualityTokens maps a lower-cased token to its rank. Codec tokens are
// removed from channel names but do not rank.
var qualityTokens = map[string]Quality{
	"4k":    QualityUHD,
	"uhd":   QualityUHD,
	"2160p": QualityUHD,
	"fhd":   QualityFHD,
	"1080p": QualityFHD,
	"1080i": QualityFHD,
	"hd":    QualityHD,
	"720p":  QualityHD,
	"sd":    QualitySD,
	"576p":  QualitySD,
	"480p":  QualitySD,
	"hevc":  QualityUnknown,
	"h265":  QualityUnknown,
	"h.265": QualityUnknown,
	"h264":  QualityUnknown,
	"h.264": QualityUnknown,
	"x265":  QualityUnknown,
	"x264":  QualityUnknown,
}

var (
	qualityTokenRegex = regexp.MustCompile(`(?i)\b(4k|uhd|2160p|fhd|1080[pi]|hd|720p|sd|576p|480p|hevc|h\.?26[45]|x26[45])\b`)

	// emptyBracketRegex matches brackets emptied by token removal, e.g. "CNN ()".
	emptyBracketRegex = regexp.MustCompile(`[(\[{]\s*[)\]}]`)

	// separatorRunRegex collapses "A - - B" left behind by "A - HD - B".
	separatorRunRegex = regexp.MustCompile(`([-|:])(\s*[-|:])+`)
)

// channelSeparators are trimmed from both ends of a stripped channel name.
const channelSeparators = " \t-|:_.,/"

// ParseQuality returns the highest quality tier named in title.
// Titles without a recognized token are QualityUnknown.
func ParseQuality(title string) Quality {
	best := QualityUnknown
	for _, tok := range qualityTokenRegex.FindAllString(title, -1) {
		if q := qualityTokens[strings.ToLower(tok)]; q > best {
			best = q
		}
	}
	return best
}

// StripQuality removes quality and codec tokens from a channel title along
// with the brackets and separators they leave behind. Case is preserved.
func StripQuality(title string) string {
	s := qualityTokenRegex.ReplaceAllString(title, " ")
	s = emptyBracketRegex.ReplaceAllString(s, " ")
	s = separatorRunRegex.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, channelSeparators)
}

// ChannelKey returns the identity shared by all quality variants of a
// channel title: quality tokens removed, accents dropped, case folded.
func ChannelKey(title string) string {
	return FoldKey(StripQuality(title))
}
