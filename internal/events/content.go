package events

import (
	"time"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/internal/fingerprint"
)

// Entity types
const (
	EntityShow    = "show"
	EntityMovie   = "movie"
	EntityChannel = "channel"
	EntityRun     = "run"
)

// Event type constants
const (
	EventEpisodesAdded  = "episode.added"
	EventMovieAdded     = "movie.added"
	EventChannelUpdated = "channel.updated"
	EventSyncCompleted  = "sync.completed"
)

// EpisodeRef names one episode inside an EpisodesAdded event.
type EpisodeRef struct {
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
	StreamURL string `json:"stream_url"`
}

// ShowEpisodes names the new episodes of one show.
type ShowEpisodes struct {
	ShowName string       `json:"show_name"`
	Episodes []EpisodeRef `json:"episodes"`
}

// EpisodesAdded is emitted once per show that gained episodes.
type EpisodesAdded struct {
	BaseEvent
	ShowName string       `json:"show_name"`
	Episodes []EpisodeRef `json:"episodes"`
}

// MovieAdded is emitted for each new movie.
type MovieAdded struct {
	BaseEvent
	Title     string `json:"title"`
	Year      *int   `json:"year,omitempty"`
	StreamURL string `json:"stream_url"`
}

// ChannelUpdated is emitted for a live channel that is new or whose stream
// changed.
type ChannelUpdated struct {
	BaseEvent
	ChannelKey   string `json:"channel_key"`
	DisplayTitle string `json:"display_title"`
	Quality      string `json:"quality"`
	StreamURL    string `json:"stream_url"`
}

// SyncCompleted closes every committed run. It summarizes everything the
// run added, so one event is enough to announce the run.
type SyncCompleted struct {
	BaseEvent
	Changed  []string       `json:"changed,omitempty"`
	Baseline bool           `json:"baseline"`
	NewItems int            `json:"new_items"`
	Counts   catalog.Counts `json:"counts"`
	Duration time.Duration  `json:"duration_ns"`

	Episodes []ShowEpisodes `json:"episodes,omitempty"`
	Movies   []string       `json:"movies,omitempty"`   // "Title (Year)"
	Channels []string       `json:"channels,omitempty"` // display titles
}

func stamp(e BaseEvent, runID string, at time.Time) BaseEvent {
	e.RunID = runID
	e.Timestamp = at
	return e
}

// FromDelta converts a delta into content events, all stamped with runID
// and the same timestamp. A baseline delta yields no events.
func FromDelta(runID string, d fingerprint.Delta) []Event {
	if d.Baseline {
		return nil
	}
	now := time.Now()
	out := make([]Event, 0, len(d.Episodes)+len(d.Movies)+len(d.Live))

	for _, show := range d.Episodes {
		out = append(out, &EpisodesAdded{
			BaseEvent: stamp(NewBaseEvent(EventEpisodesAdded, EntityShow, show.ShowName), runID, now),
			ShowName:  show.ShowName,
			Episodes:  episodeRefs(show.Episodes),
		})
	}

	for _, m := range d.Movies {
		k := m.Key()
		out = append(out, &MovieAdded{
			BaseEvent: stamp(NewBaseEvent(EventMovieAdded, EntityMovie, k.String()), runID, now),
			Title:     k.Title,
			Year:      k.YearPtr(),
			StreamURL: m.StreamURL,
		})
	}

	for _, l := range d.Live {
		out = append(out, &ChannelUpdated{
			BaseEvent:    stamp(NewBaseEvent(EventChannelUpdated, EntityChannel, l.ChannelKey), runID, now),
			ChannelKey:   l.ChannelKey,
			DisplayTitle: l.DisplayTitle,
			Quality:      l.QualityRank.String(),
			StreamURL:    l.StreamURL,
		})
	}
	return out
}

func episodeRefs(items []catalog.SeriesItem) []EpisodeRef {
	refs := make([]EpisodeRef, 0, len(items))
	for _, ep := range items {
		refs = append(refs, EpisodeRef{Season: ep.Season, Episode: ep.Episode, StreamURL: ep.StreamURL})
	}
	return refs
}

// NewSyncCompleted builds the event closing a run, including a summary of
// the delta. A baseline run carries no summary.
func NewSyncCompleted(runID string, changes fingerprint.Changes, d fingerprint.Delta, counts catalog.Counts, took time.Duration) *SyncCompleted {
	e := &SyncCompleted{
		BaseEvent: NewBaseEvent(EventSyncCompleted, EntityRun, runID),
		Changed:   changes.Sections(),
		Baseline:  d.Baseline,
		NewItems:  d.Count(),
		Counts:    counts,
		Duration:  took,
	}
	e.RunID = runID
	if d.Baseline {
		return e
	}
	for _, show := range d.Episodes {
		e.Episodes = append(e.Episodes, ShowEpisodes{ShowName: show.ShowName, Episodes: episodeRefs(show.Episodes)})
	}
	for _, m := range d.Movies {
		e.Movies = append(e.Movies, m.Key().String())
	}
	for _, l := range d.Live {
		e.Channels = append(e.Channels, l.DisplayTitle)
	}
	return e
}
