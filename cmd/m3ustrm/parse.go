package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/m3ustrm/internal/live"
	"github.com/vmunix/m3ustrm/pkg/release"
)

// parseResult is what the detectors make of one entry title.
type parseResult struct {
	Title   string       `json:"title"`
	Episode *episodeJSON `json:"episode,omitempty"`
	Movie   movieJSON    `json:"movie"`
	Live    liveJSON     `json:"live"`
}

type episodeJSON struct {
	Show    string `json:"show"`
	Season  int    `json:"season"`
	Episode int    `json:"episode"`
	Pattern string `json:"pattern"`
}

type movieJSON struct {
	Title string `json:"title"`
	Year  *int   `json:"year,omitempty"`
}

type liveJSON struct {
	ChannelKey string `json:"channel_key"`
	Name       string `json:"name"`
	Quality    string `json:"quality"`
}

func parseTitle(title string) parseResult {
	res := parseResult{Title: title}
	if m, ok := release.DetectEpisode(title); ok {
		res.Episode = &episodeJSON{Show: m.ShowName, Season: m.Season, Episode: m.Episode, Pattern: m.Pattern}
	}
	res.Movie.Title, res.Movie.Year = release.DetectYear(title)
	res.Live = liveJSON{
		ChannelKey: live.ChannelKey(title),
		Name:       release.StripQuality(title),
		Quality:    release.ParseQuality(title).String(),
	}
	return res
}

func newParseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <title>...",
		Short: "Show how an entry title is read as episode, movie and channel",
		Long: `Run the series, movie and live detectors on entry titles. No config or
playlist is needed.

Examples:
  m3ustrm parse "Breaking Bad S01 E02"
  m3ustrm parse --json "Inception (2010)" "CNN HD"`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]parseResult, 0, len(args))
			for _, title := range args {
				results = append(results, parseTitle(title))
			}

			out := cmd.OutOrStdout()
			if ctx.json() {
				return writeJSON(out, results)
			}
			for i, r := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printParseResult(out, r)
			}
			return nil
		},
	}
}

func printParseResult(w io.Writer, r parseResult) {
	fmt.Fprintf(w, "Title:    %s\n", r.Title)
	if r.Episode != nil {
		fmt.Fprintf(w, "Episode:  %s S%02dE%02d (%s)\n", r.Episode.Show, r.Episode.Season, r.Episode.Episode, r.Episode.Pattern)
	} else {
		fmt.Fprintln(w, "Episode:  -")
	}
	year := "-"
	if r.Movie.Year != nil {
		year = strconv.Itoa(*r.Movie.Year)
	}
	fmt.Fprintf(w, "Movie:    %s (year: %s)\n", r.Movie.Title, year)
	fmt.Fprintf(w, "Channel:  %s [key %q, quality %s]\n", r.Live.Name, r.Live.ChannelKey, r.Live.Quality)
}
