package release

import (
	"regexp"
	"strconv"
	"strings"
)

// showNameTrim lists the separators stripped from the end of a show name.
const showNameTrim = " \t-:|._–—"

// episodeMatcher reports a season/episode marker in title, if any.
type episodeMatcher struct {
	name  string
	match func(title string) (EpisodeMatch, bool)
}

// episodeMatchers are tried in order; the first hit wins. Verbose forms come
// first so that "Season 2 Episode 10" is never read through a looser pattern.
var episodeMatchers = []episodeMatcher{
	regexMatcher("season-episode", regexp.MustCompile(`(?i)\bseason[\s._-]*(\d{1,3})[\s._,-]*episode[\s._-]*(\d{1,4})`)),
	regexMatcher("sxxexx", regexp.MustCompile(`(?i)\bs(\d{1,3})[\s._-]*e(\d{1,4})`)),
	regexMatcher("nxm", regexp.MustCompile(`(?i)\b(\d{1,3})x(\d{1,4})\b`)),
}

// regexMatcher builds a matcher from a pattern whose first two groups are
// the season and episode numbers.
func regexMatcher(name string, re *regexp.Regexp) episodeMatcher {
	return episodeMatcher{
		name: name,
		match: func(title string) (EpisodeMatch, bool) {
			loc := re.FindStringSubmatchIndex(title)
			if loc == nil {
				return EpisodeMatch{}, false
			}
			season, err := strconv.Atoi(title[loc[2]:loc[3]])
			if err != nil || season <= 0 {
				return EpisodeMatch{}, false
			}
			episode, err := strconv.Atoi(title[loc[4]:loc[5]])
			if err != nil || episode <= 0 {
				return EpisodeMatch{}, false
			}
			show := strings.TrimRight(title[:loc[0]], showNameTrim)
			show = strings.TrimSpace(show)
			if show == "" {
				return EpisodeMatch{}, false
			}
			return EpisodeMatch{
				ShowName: show,
				Season:   season,
				Episode:  episode,
				Pattern:  name,
			}, true
		},
	}
}

// DetectEpisode extracts the show name, season and episode from a series
// title such as "Breaking Bad S01 E02" or "Lost - 2x05".
// It returns false when no recognized marker is present, or when the marker
// yields a zero season/episode or an empty show name.
func DetectEpisode(title string) (EpisodeMatch, bool) {
	title = strings.TrimSpace(title)
	for _, m := range episodeMatchers {
		if em, ok := m.match(title); ok {
			return em, true
		}
	}
	return EpisodeMatch{}, false
}
