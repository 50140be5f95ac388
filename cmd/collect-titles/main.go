// Command collect-titles extracts series and movie titles from the configured
// playlist, with what the detectors currently make of them, as seed rows for
// the release detection corpus (pkg/release/testdata/titles.csv).
//
// Review the output by hand before adding it to the corpus: it records the
// current behavior, not the correct one.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vmunix/m3ustrm/internal/classify"
	"github.com/vmunix/m3ustrm/internal/config"
	"github.com/vmunix/m3ustrm/pkg/playlist"
	"github.com/vmunix/m3ustrm/pkg/release"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to config file")
	output := flag.String("output", "testdata/titles.csv", "Output CSV file")
	limit := flag.Int("limit", 200, "Maximum titles per kind (0 for no limit)")
	flag.Parse()

	if err := run(*configPath, *output, *limit); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, output string, limit int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	f, err := os.Open(cfg.Playlist.Path)
	if err != nil {
		return fmt.Errorf("open playlist: %w", err)
	}
	defer func() { _ = f.Close() }()

	results, err := collect(f, cfg.ClassifyGroups(), limit)
	if err != nil {
		return err
	}
	fmt.Printf("Total unique titles: %d\n", len(results))

	if err := writeCSV(output, results); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	fmt.Printf("Written to %s\n", output)
	return nil
}

type record struct {
	Title   string
	Kind    string // "episode" or "movie"
	Show    string
	Season  int
	Episode int
	Clean   string
	Year    *int
}

// collect returns one record per distinct series or movie title. Series
// titles without an episode marker are skipped.
func collect(r io.Reader, groups classify.Groups, limit int) ([]record, error) {
	seen := make(map[string]bool)
	perKind := make(map[string]int)
	var results []record

	p := playlist.NewParser(r)
	for e := range p.Entries() {
		if seen[e.Title] {
			continue
		}

		var rec record
		switch classify.Classify(e, groups) {
		case classify.Series:
			m, ok := release.DetectEpisode(e.Title)
			if !ok {
				continue
			}
			rec = record{Title: e.Title, Kind: "episode", Show: m.ShowName, Season: m.Season, Episode: m.Episode}
		case classify.Movie:
			clean, year := release.DetectYear(e.Title)
			rec = record{Title: e.Title, Kind: "movie", Clean: clean, Year: year}
		default:
			continue
		}

		if limit > 0 && perKind[rec.Kind] >= limit {
			continue
		}
		seen[e.Title] = true
		perKind[rec.Kind]++
		results = append(results, rec)
	}
	return results, p.Err()
}

func writeCSV(path string, records []record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"title", "kind", "show", "season", "episode", "clean", "year"}); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{r.Title, r.Kind, "", "", "", "", ""}
		switch r.Kind {
		case "episode":
			row[2], row[3], row[4] = r.Show, strconv.Itoa(r.Season), strconv.Itoa(r.Episode)
		case "movie":
			row[5] = r.Clean
			if r.Year != nil {
				row[6] = strconv.Itoa(*r.Year)
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
