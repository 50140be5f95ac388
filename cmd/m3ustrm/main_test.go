package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPlaylist = `#EXTM3U
#EXTINF:-1 group-title="Series",Breaking Bad S01E01
http://example.com/bb/101.mkv
#EXTINF:-1 group-title="Movies",Inception (2010)
http://example.com/movies/inception.mkv
#EXTINF:-1 tvg-id="cnn.us" group-title="News",CNN HD
http://example.com/live/cnn-hd.ts
#EXTINF:-1 group-title="News",CNN SD
http://example.com/live/cnn-sd.ts
#EXTINF:-1 group-title="Radio",Jazz FM
http://example.com/radio/jazz.mp3
`

type cliEnv struct {
	dir        string
	configPath string
	playlist   string
	selection  string
	database   string
}

func setupCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := &cliEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.toml"),
		playlist:   filepath.Join(dir, "playlist.m3u"),
		selection:  filepath.Join(dir, "filters.json"),
		database:   filepath.Join(dir, "data", "state.db"),
	}
	require.NoError(t, os.WriteFile(env.playlist, []byte(testPlaylist), 0o644))

	cfg := fmt.Sprintf(`[log]
level = "warn"

[playlist]
path = %q

[groups]
series = ["Series"]
movies = ["Movies"]
live = ["News"]

[selection]
path = %q

[state]
database = %q

[schedule]
interval = "30m"
`, env.playlist, env.selection, env.database)
	require.NoError(t, os.WriteFile(env.configPath, []byte(cfg), 0o644))
	return env
}

// runCLI executes the command tree with args and captures its output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--env-file="))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
