// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/m3ustrm/internal/classify"
	"github.com/vmunix/m3ustrm/internal/live"
)

// Config is the root configuration structure.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Playlist  PlaylistConfig  `toml:"playlist"`
	Groups    GroupsConfig    `toml:"groups"`
	Live      LiveConfig      `toml:"live"`
	Selection SelectionConfig `toml:"selection"`
	State     StateConfig     `toml:"state"`
	Schedule  ScheduleConfig  `toml:"schedule"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type PlaylistConfig struct {
	Path string `toml:"path"`
}

// GroupsConfig lists the playlist group titles of each category.
type GroupsConfig struct {
	Series []string `toml:"series"`
	Movies []string `toml:"movies"`
	Live   []string `toml:"live"`
}

type LiveConfig struct {
	KeyByTVGID bool `toml:"key_by_tvg_id"`
}

type SelectionConfig struct {
	Path string `toml:"path"`
}

type StateConfig struct {
	Database string `toml:"database"`
	Lock     string `toml:"lock"`
}

type ScheduleConfig struct {
	Interval time.Duration `toml:"interval"`
}

const (
	defaultLogLevel = "info"
	defaultDatabase = "./data/m3ustrm.db"
	defaultInterval = time.Hour
)

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file and applies
// defaults. Unresolved environment variables are still an error.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.State.Database == "" {
		c.State.Database = defaultDatabase
	}
	if c.State.Lock == "" {
		c.State.Lock = c.State.Database + ".lock"
	}
	if c.Schedule.Interval == 0 {
		c.Schedule.Interval = defaultInterval
	}
}

// ClassifyGroups returns the normalized group lists.
func (c *Config) ClassifyGroups() classify.Groups {
	return classify.NewGroups(c.Groups.Series, c.Groups.Movies, c.Groups.Live)
}

// LiveOptions returns the live deduplication options.
func (c *Config) LiveOptions() live.Options {
	return live.Options{KeyByTVGID: c.Live.KeyByTVGID}
}

// SlogLevel maps log.level to a slog level. Unknown values map to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references in content. It returns
// the substituted content and a description of every reference that could
// not be resolved; unresolved references are left in place.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
