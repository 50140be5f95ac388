package release

import (
	"regexp"
	"strconv"
	"strings"
)

// trailingYearRegex matches a four digit number in a trailing parenthetical.
var trailingYearRegex = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)

// DetectYear splits a movie title into its clean title and release year.
// Only a trailing "(dddd)" counts; any four digits are accepted. When no
// year is present the title is returned unchanged and year is nil.
func DetectYear(title string) (clean string, year *int) {
	m := trailingYearRegex.FindStringSubmatch(title)
	if m == nil {
		return title, nil
	}
	clean = strings.TrimSpace(m[1])
	if clean == "" {
		// "(2010)" on its own is a title, not a year.
		return title, nil
	}
	y, err := strconv.Atoi(m[2])
	if err != nil {
		return title, nil
	}
	return clean, &y
}
