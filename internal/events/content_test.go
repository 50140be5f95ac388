package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/internal/fingerprint"
	"github.com/vmunix/m3ustrm/pkg/release"
)

func testDelta() fingerprint.Delta {
	y := 2010
	return fingerprint.Delta{
		Episodes: []fingerprint.ShowEpisodes{{
			ShowName: "Breaking Bad",
			Episodes: []catalog.SeriesItem{
				{ShowName: "Breaking Bad", Season: 1, Episode: 1, StreamURL: "http://x/101"},
				{ShowName: "Breaking Bad", Season: 1, Episode: 2, StreamURL: "http://x/102"},
			},
		}},
		Movies: []catalog.MovieItem{{Title: "Inception", Year: &y, StreamURL: "http://x/inception"}},
		Live:   []catalog.LiveItem{{ChannelKey: "cnn", DisplayTitle: "CNN HD", QualityRank: release.QualityHD, StreamURL: "http://x/cnn"}},
	}
}

func TestFromDelta(t *testing.T) {
	evts := FromDelta("run-1", testDelta())
	require.Len(t, evts, 3)

	ep, ok := evts[0].(*EpisodesAdded)
	require.True(t, ok)
	assert.Equal(t, EventEpisodesAdded, ep.EventType())
	assert.Equal(t, EntityShow, ep.EntityType())
	assert.Equal(t, "Breaking Bad", ep.EntityID())
	assert.Equal(t, "run-1", ep.RunID)
	assert.Equal(t, []EpisodeRef{
		{Season: 1, Episode: 1, StreamURL: "http://x/101"},
		{Season: 1, Episode: 2, StreamURL: "http://x/102"},
	}, ep.Episodes)

	mv, ok := evts[1].(*MovieAdded)
	require.True(t, ok)
	assert.Equal(t, "Inception (2010)", mv.EntityID())
	require.NotNil(t, mv.Year)
	assert.Equal(t, 2010, *mv.Year)

	ch, ok := evts[2].(*ChannelUpdated)
	require.True(t, ok)
	assert.Equal(t, "cnn", ch.ChannelKey)
	assert.Equal(t, "HD", ch.Quality)

	assert.Equal(t, evts[0].OccurredAt(), evts[2].OccurredAt(), "one timestamp per run")
}

func TestFromDelta_Baseline(t *testing.T) {
	d := testDelta()
	d.Baseline = true
	assert.Empty(t, FromDelta("run-1", d))
	assert.Empty(t, FromDelta("run-1", fingerprint.Delta{}))
}

func TestNewSyncCompleted(t *testing.T) {
	e := NewSyncCompleted("run-9",
		fingerprint.Changes{Movies: true},
		testDelta(),
		catalog.Counts{Shows: 1, Episodes: 2, Movies: 1, Live: 1},
		3*time.Second,
	)

	assert.Equal(t, EventSyncCompleted, e.EventType())
	assert.Equal(t, EntityRun, e.EntityType())
	assert.Equal(t, "run-9", e.EntityID())
	assert.Equal(t, "run-9", e.RunID)
	assert.Equal(t, []string{"movies"}, e.Changed)
	assert.Equal(t, 4, e.NewItems)
	assert.False(t, e.Baseline)

	require.Len(t, e.Episodes, 1)
	assert.Equal(t, "Breaking Bad", e.Episodes[0].ShowName)
	assert.Len(t, e.Episodes[0].Episodes, 2)
	assert.Equal(t, []string{"Inception (2010)"}, e.Movies)
	assert.Equal(t, []string{"CNN HD"}, e.Channels)
}

func TestNewSyncCompleted_BaselineHasNoSummary(t *testing.T) {
	d := testDelta()
	d.Baseline = true
	e := NewSyncCompleted("run-1", fingerprint.Changes{Series: true}, d, catalog.Counts{}, time.Second)

	assert.True(t, e.Baseline)
	assert.Empty(t, e.Episodes)
	assert.Empty(t, e.Movies)
	assert.Empty(t, e.Channels)
}

func TestContentEvents_RoundTripThroughLog(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	bus := NewBus(log, nil)
	defer bus.Close()
	ctx := context.Background()

	require.NoError(t, bus.PublishAll(ctx, FromDelta("run-1", testDelta())))

	raws, err := log.Since(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, raws, 3)

	registry := DefaultRegistry()
	decoded, err := registry.Unmarshal(raws[0])
	require.NoError(t, err)
	added, ok := decoded.(*EpisodesAdded)
	require.True(t, ok)
	assert.Equal(t, "Breaking Bad", added.ShowName)
	assert.Len(t, added.Episodes, 2)
	assert.Equal(t, "run-1", added.RunID)

	require.NoError(t, bus.Publish(ctx, NewSyncCompleted("run-1", fingerprint.Changes{Series: true}, testDelta(), catalog.Counts{}, time.Second)))
	raws, err = log.Since(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, raws, 4)
	decoded, err = registry.Unmarshal(raws[3])
	require.NoError(t, err)
	done, ok := decoded.(*SyncCompleted)
	require.True(t, ok)
	assert.Equal(t, []string{"Inception (2010)"}, done.Movies)
	require.Len(t, done.Episodes, 1)
	assert.Equal(t, 2, done.Episodes[0].Episodes[1].Episode)
}
