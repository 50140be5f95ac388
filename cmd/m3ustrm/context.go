package main

import (
	"io"
	"log/slog"

	"github.com/vmunix/m3ustrm/internal/config"
)

// commandContext carries the global flags and the lazily loaded config.
type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	cfg     *config.Config
	cfgPath string
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{configFlag: configFlag, jsonFlag: jsonFlag}
}

// ensureConfig resolves the config path and loads it once.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path, err := c.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg, c.cfgPath = cfg, path
	return cfg, nil
}

// configPath returns the --config flag or the discovered config file.
func (c *commandContext) configPath() (string, error) {
	if c.configFlag != nil && *c.configFlag != "" {
		return *c.configFlag, nil
	}
	return config.Discover()
}

func (c *commandContext) json() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// logger builds the text logger at the configured level.
func (c *commandContext) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.cfg != nil {
		level = c.cfg.SlogLevel()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
