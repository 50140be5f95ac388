package config

import (
	"fmt"
	"os"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Playlist.Path == "" {
		errs = append(errs, "playlist.path: required")
	}

	if c.ClassifyGroups().Empty() {
		errs = append(errs, "groups: at least one series, movies or live group must be configured")
	}

	if c.Schedule.Interval < 0 {
		errs = append(errs, fmt.Sprintf("schedule.interval: must not be negative, got %s", c.Schedule.Interval))
	}

	return errs
}

// Warnings reports suspicious but usable settings.
func (c *Config) Warnings() []string {
	var warns []string

	for _, g := range c.ClassifyGroups().Overlaps() {
		warns = append(warns, fmt.Sprintf("groups: %q is listed in more than one category; series wins over movies over live", g))
	}

	if c.Playlist.Path != "" {
		if _, err := os.Stat(c.Playlist.Path); os.IsNotExist(err) {
			warns = append(warns, fmt.Sprintf("playlist.path: file %q does not exist", c.Playlist.Path))
		}
	}

	return warns
}
