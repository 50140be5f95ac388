package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vmunix/m3ustrm/internal/events"
)

// Notification is a human-readable announcement of new content.
type Notification struct {
	Event string
	RunID string
	Title string
	Body  string
}

// Notifier delivers notifications, for example to a chat webhook.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, n.Title, "event", n.Event, "run_id", n.RunID, "detail", n.Body)
	return nil
}

// Caps applied when listing a run's additions.
const (
	maxEpisodesPerShow = 5
	maxMovies          = 20
)

// AnnounceHandler sends one notification per run that added content.
type AnnounceHandler struct {
	*BaseHandler
	notifier Notifier
	sub      <-chan events.Event
}

// NewAnnounceHandler creates the handler and subscribes it to the bus, so
// runs completed after it returns reach Start. Only run completions are
// read; the per-item content events stay in the event log.
func NewAnnounceHandler(bus *events.Bus, notifier Notifier, logger *slog.Logger) *AnnounceHandler {
	h := &AnnounceHandler{
		BaseHandler: NewBaseHandler(bus, logger),
		notifier:    notifier,
	}
	h.logger = h.logger.With("handler", h.Name())
	h.sub = bus.Subscribe(events.EventSyncCompleted, 16)
	return h
}

// Name returns the handler name.
func (h *AnnounceHandler) Name() string {
	return "announce"
}

// Start delivers notifications until the bus closes or ctx is canceled.
func (h *AnnounceHandler) Start(ctx context.Context) error {
	for {
		select {
		case e, ok := <-h.sub:
			if !ok {
				return nil // Bus closed
			}
			n, ok := Format(e)
			if !ok {
				continue
			}
			if err := h.notifier.Notify(ctx, n); err != nil {
				h.Logger().Warn("notification failed", "run_id", n.RunID, "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Format renders a completed run as a single notification listing what it
// added. Baseline runs, runs that added nothing and any other event report
// false.
func Format(e events.Event) (Notification, bool) {
	ev, ok := e.(*events.SyncCompleted)
	if !ok || ev.Baseline || ev.NewItems == 0 {
		return Notification{}, false
	}

	var b strings.Builder
	if len(ev.Episodes) > 0 {
		b.WriteString("New episodes:\n")
		for _, show := range ev.Episodes {
			writeShow(&b, show)
		}
	}
	if len(ev.Movies) > 0 {
		b.WriteString("New movies:\n")
		for _, m := range ev.Movies[:min(len(ev.Movies), maxMovies)] {
			fmt.Fprintf(&b, "- %s\n", m)
		}
		if extra := len(ev.Movies) - maxMovies; extra > 0 {
			fmt.Fprintf(&b, "- and %d more\n", extra)
		}
	}
	if len(ev.Channels) > 0 {
		fmt.Fprintf(&b, "Live channels updated: %d\n", len(ev.Channels))
	}
	fmt.Fprintf(&b, "Total: %d new items", ev.NewItems)

	return Notification{
		Event: ev.EventType(),
		RunID: ev.RunID,
		Title: fmt.Sprintf("Library update: %d new", ev.NewItems),
		Body:  b.String(),
	}, true
}

func writeShow(b *strings.Builder, show events.ShowEpisodes) {
	if len(show.Episodes) == 1 {
		ep := show.Episodes[0]
		fmt.Fprintf(b, "- %s S%02dE%02d\n", show.ShowName, ep.Season, ep.Episode)
		return
	}
	fmt.Fprintf(b, "- %s: %d episodes\n", show.ShowName, len(show.Episodes))
	for _, ep := range show.Episodes[:min(len(show.Episodes), maxEpisodesPerShow)] {
		fmt.Fprintf(b, "  - S%02dE%02d\n", ep.Season, ep.Episode)
	}
	if extra := len(show.Episodes) - maxEpisodesPerShow; extra > 0 {
		fmt.Fprintf(b, "  - and %d more\n", extra)
	}
}
