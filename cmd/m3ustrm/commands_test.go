package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCommand_JSON(t *testing.T) {
	env := setupCLIEnv(t)
	require.NoError(t, os.WriteFile(env.selection, []byte(`{"series": ["Breaking Bad", "Braking Bad"]}`), 0o644))

	out, _, err := runCLI(t, "catalog", "--config", env.configPath, "--json", "--items")
	require.NoError(t, err)

	var rep catalogReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 1, rep.Counts.Shows)
	assert.Equal(t, 1, rep.Counts.Movies)
	assert.Equal(t, 1, rep.Counts.Live)
	assert.Equal(t, 5, rep.Diagnostics.Parsed)
	assert.Equal(t, 1, rep.Diagnostics.Unclassified)
	assert.Equal(t, 1, rep.Diagnostics.LiveDuplicates)
	assert.Equal(t, []string{"Breaking Bad"}, rep.Shows)
	assert.Equal(t, []string{"Inception (2010)"}, rep.Movies)
	assert.Equal(t, []string{"CNN HD"}, rep.Channels)

	require.Len(t, rep.Unmatched, 1)
	assert.Equal(t, "series", rep.Unmatched[0].Category)
	assert.Equal(t, "Braking Bad", rep.Unmatched[0].Key)
	assert.Equal(t, "Breaking Bad", rep.Unmatched[0].Suggestion)
}

func TestCatalogCommand_Table(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, "catalog", "--config", env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Episodes")
	assert.Contains(t, out, "Live duplicates")
	assert.NotContains(t, out, "Selection keys without a match")
}

func TestCatalogCommand_MissingConfig(t *testing.T) {
	_, _, err := runCLI(t, "catalog", "--config", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestRunAndStateCommands(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, "run", "--config", env.configPath, "--json")
	require.NoError(t, err)
	var first runReport
	require.NoError(t, json.Unmarshal([]byte(out), &first))
	assert.True(t, first.Baseline)
	assert.Equal(t, 0, first.NewItems)
	assert.Equal(t, 1, first.Episodes)

	grown := testPlaylist + "#EXTINF:-1 group-title=\"Series\",Breaking Bad S01E02\nhttp://example.com/bb/102.mkv\n" +
		"#EXTINF:-1 group-title=\"Movies\",Dune (2021)\nhttp://example.com/movies/dune.mkv\n"
	require.NoError(t, os.WriteFile(env.playlist, []byte(grown), 0o644))

	out, _, err = runCLI(t, "run", "--config", env.configPath, "--json")
	require.NoError(t, err)
	var second runReport
	require.NoError(t, json.Unmarshal([]byte(out), &second))
	assert.False(t, second.Baseline)
	assert.Equal(t, 2, second.NewItems)
	assert.Equal(t, []string{"series", "movies"}, second.Changed)

	out, _, err = runCLI(t, "state", "--config", env.configPath, "--json", "--events", "10")
	require.NoError(t, err)
	var st stateReport
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Len(t, st.Digests, 3)
	require.Len(t, st.Runs, 2)
	assert.Equal(t, second.RunID, st.Runs[0].ID)
	assert.True(t, st.Runs[1].Baseline)

	types := make([]string, 0, len(st.Events))
	for _, e := range st.Events {
		types = append(types, e.Type)
	}
	assert.ElementsMatch(t, []string{"sync.completed", "sync.completed", "episode.added", "movie.added"}, types)
}

func TestRunCommand_Table(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, "run", "--config", env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "baseline recorded")

	out, _, err = runCLI(t, "state", "--config", env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "series")
	assert.Contains(t, out, "baseline")
}

func TestStateCommand_Empty(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, "state", "--config", env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded yet.")
}

func TestConfigInitAndTest(t *testing.T) {
	target := filepath.Join(t.TempDir(), "m3ustrm", "config.toml")

	out, _, err := runCLI(t, "config", "init", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote sample configuration")
	_, err = os.Stat(target)
	require.NoError(t, err)

	_, _, err = runCLI(t, "config", "init", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runCLI(t, "config", "init", "--force", target)
	require.NoError(t, err)

	t.Setenv("M3USTRM_PLAYLIST", filepath.Join(t.TempDir(), "playlist.m3u"))
	out, _, err = runCLI(t, "config", "test", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid!")
	assert.Contains(t, out, "does not exist", "missing playlist is a warning")
}

func TestConfigTest_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o644))

	out, _, err := runCLI(t, "config", "test", path)
	require.Error(t, err)
	assert.Equal(t, "configuration invalid", err.Error())
	assert.Contains(t, out, "log.level")
	assert.Contains(t, out, "playlist.path: required")
}

func TestEnvFileFeedsConfig(t *testing.T) {
	env := setupCLIEnv(t)
	const name = "M3USTRM_TEST_PLAYLIST"
	t.Cleanup(func() { _ = os.Unsetenv(name) })

	cfg := "[playlist]\npath = \"${" + name + "}\"\n[groups]\nseries = [\"Series\"]\n[state]\ndatabase = \"" +
		filepath.Join(env.dir, "env.db") + "\"\n"
	cfgPath := filepath.Join(env.dir, "env.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	envFile := filepath.Join(env.dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(name+"="+env.playlist+"\n"), 0o644))

	cmd := newRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"catalog", "--config", cfgPath, "--env-file", envFile, "--json"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, env.playlist, os.Getenv(name))
}
