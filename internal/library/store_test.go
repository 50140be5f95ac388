package library

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/internal/fingerprint"
	"github.com/vmunix/m3ustrm/pkg/release"
)

func testCatalog() *catalog.Catalog {
	c, _ := catalog.Build(
		[]catalog.SeriesItem{
			{ShowName: "Breaking Bad", Season: 1, Episode: 2, StreamURL: "http://x/bb102", Title: "Breaking Bad S01 E02"},
			{ShowName: "Breaking Bad", Season: 1, Episode: 1, StreamURL: "http://x/bb101", Title: "Breaking Bad S01 E01"},
			{ShowName: "Dark", Season: 2, Episode: 1, StreamURL: "http://x/d201", LogoURL: "http://logo/dark"},
		},
		[]catalog.MovieItem{
			{Title: "Inception", Year: ptr(2010), StreamURL: "http://x/inception"},
			{Title: "Metropolis", StreamURL: "http://x/metropolis"},
		},
		[]catalog.LiveItem{
			{ChannelKey: "cnn", DisplayTitle: "CNN HD", Name: "CNN", StreamURL: "http://x/cnn", QualityRank: release.QualityHD, TVGID: "cnn.us"},
			{ChannelKey: "arte", DisplayTitle: "Arte", Name: "Arte", StreamURL: "http://x/arte", GroupTitle: "News"},
		},
		catalog.Filter{},
	)
	return c
}

func testRun(id string, started time.Time) Run {
	return Run{
		ID:         id,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Entries:    7,
		Counts:     catalog.Counts{Shows: 2, Episodes: 3, Movies: 2, Live: 2},
		Changed:    []string{fingerprint.SectionSeries, fingerprint.SectionLive},
		NewItems:   1,
	}
}

func TestStore_DigestsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "nothing stored yet")

	want := fingerprint.Digests{Series: "s1", Movies: "m1", Live: "l1"}
	require.NoError(t, store.Save(ctx, want))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	want.Movies = "m2"
	require.NoError(t, store.Save(ctx, want))
	got, _, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "m2", got.Movies)

	records, err := store.ListDigests(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, fingerprint.SectionLive, records[0].Section)
	assert.False(t, records[0].UpdatedAt.IsZero())
}

func TestStore_SnapshotBeforeCommit(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)

	c, err := store.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestStore_Commit(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)

	c := testCatalog()
	d := fingerprint.Compute(c)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Commit(ctx, testRun("run-1", started), d, c))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, d, got)

	snap, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, c.Series, snap.Series)
	assert.Equal(t, c.Movies, snap.Movies)
	assert.Equal(t, c.Live, snap.Live)
	assert.Equal(t, d, fingerprint.Compute(snap), "snapshot digests match")

	run, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 7, run.Entries)
	assert.Equal(t, catalog.Counts{Shows: 2, Episodes: 3, Movies: 2, Live: 2}, run.Counts)
	assert.Equal(t, []string{"series", "live"}, run.Changed)
	assert.False(t, run.Baseline)
	assert.WithinDuration(t, started, run.StartedAt, time.Second)
	assert.Equal(t, 2*time.Second, run.Duration().Round(time.Second))
}

func TestStore_CommitReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := testCatalog()
	require.NoError(t, store.Commit(ctx, testRun("run-1", now), fingerprint.Compute(first), first))

	second := catalog.New()
	second.Live = []catalog.LiveItem{{ChannelKey: "bbc one", DisplayTitle: "BBC One", StreamURL: "http://x/bbc"}}
	require.NoError(t, store.Commit(ctx, testRun("run-2", now.Add(time.Hour)), fingerprint.Compute(second), second))

	snap, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Series)
	assert.Empty(t, snap.Movies)
	require.Len(t, snap.Live, 1)
	assert.Equal(t, "bbc one", snap.Live[0].ChannelKey)
}

func TestStore_SnapshotKeepsYearZeroApartFromNoYear(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)

	c, _ := catalog.Build(nil, []catalog.MovieItem{
		{Title: "Foo", Year: ptr(0), StreamURL: "http://x/foo-0000"},
		{Title: "Foo", StreamURL: "http://x/foo"},
	}, nil, catalog.Filter{})
	require.Len(t, c.Movies, 2)
	require.NoError(t, store.Commit(ctx, testRun("run-1", time.Now()), fingerprint.Compute(c), c))

	snap, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Movies, 2)

	dated := snap.Movies[catalog.YearKey("Foo", 0)]
	require.NotNil(t, dated.Year)
	assert.Equal(t, 0, *dated.Year)
	assert.Equal(t, "http://x/foo-0000", dated.StreamURL)
	assert.Nil(t, snap.Movies[catalog.MovieKey{Title: "Foo"}].Year)
	assert.Equal(t, fingerprint.DigestMovies(c), fingerprint.DigestMovies(snap))
}

func TestStore_CommitIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := testCatalog()
	d := fingerprint.Compute(c)
	require.NoError(t, store.Commit(ctx, testRun("run-1", now), d, c))

	// A second commit reusing the run ID fails on the run insert, after
	// digests and snapshot were written inside the same transaction.
	empty := catalog.New()
	err := store.Commit(ctx, testRun("run-1", now.Add(time.Hour)), fingerprint.Compute(empty), empty)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)

	got, _, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, d, got, "digests rolled back")

	snap, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Movies, 2, "snapshot rolled back")
}

func TestStore_CommitRejectsEmptyChannelKey(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)

	c := catalog.New()
	c.Live = []catalog.LiveItem{{ChannelKey: "", StreamURL: "http://x"}}
	err := store.Commit(ctx, testRun("run-1", time.Now()), fingerprint.Compute(c), c)
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestStore_ListRuns(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := catalog.New()
	d := fingerprint.Compute(c)
	for i, id := range []string{"a", "b", "c"} {
		r := testRun(id, base.Add(time.Duration(i)*time.Hour))
		r.Baseline = i == 0
		require.NoError(t, store.Commit(ctx, r, d, c))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)

	all, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[2].Baseline)
}

func TestStore_GetRunNotFound(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ImplementsFingerprintStore(t *testing.T) {
	ctx := context.Background()
	engine := fingerprint.NewEngine(NewStore(setupTestDB(t), nil), nil)

	res, err := engine.Begin(ctx, fingerprint.Digests{Series: "s"})
	require.NoError(t, err)
	assert.True(t, res.Baseline)
	require.NoError(t, engine.Commit(ctx, fingerprint.Digests{Series: "s"}))

	res, err = engine.Begin(ctx, fingerprint.Digests{Series: "s"})
	require.NoError(t, err)
	assert.False(t, res.Baseline)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	store := NewStore(db, nil)
	require.NoError(t, store.Save(ctx, fingerprint.Digests{Series: "a", Movies: "b", Live: "c"}))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	_, ok, err := NewStore(db, nil).Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "state survives reopen")
}

func TestStore_ClosedDB(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db, nil)
	require.NoError(t, db.Close())

	_, _, err := store.Load(context.Background())
	assert.Error(t, err)
}
