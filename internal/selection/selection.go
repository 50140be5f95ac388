// Package selection reads and writes the user's include lists: the shows,
// movies and channels a catalog is limited to.
package selection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vmunix/m3ustrm/internal/catalog"
)

// file is the on-disk shape, shared by JSON and YAML. A nil list leaves its
// category unrestricted; an empty list admits nothing.
type file struct {
	Series *[]string `json:"series,omitempty" yaml:"series,omitempty"`
	Movies *[]string `json:"movies,omitempty" yaml:"movies,omitempty"`
	Live   *[]string `json:"live,omitempty" yaml:"live,omitempty"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads a selection file. JSON is assumed unless the extension is
// .yaml or .yml. A missing or blank file yields an unrestricted filter.
func Load(path string) (catalog.Filter, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return catalog.Filter{}, nil
	}
	if err != nil {
		return catalog.Filter{}, fmt.Errorf("read selection: %w", err)
	}
	return Parse(data, isYAML(path))
}

// Parse decodes selection data.
func Parse(data []byte, asYAML bool) (catalog.Filter, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return catalog.Filter{}, nil
	}

	var f file
	if asYAML {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return catalog.Filter{}, fmt.Errorf("parse selection yaml: %w", err)
		}
	} else if err := json.Unmarshal(data, &f); err != nil {
		return catalog.Filter{}, fmt.Errorf("parse selection json: %w", err)
	}

	return catalog.Filter{
		Series: toSelection(f.Series),
		Movies: toSelection(f.Movies),
		Live:   toSelection(f.Live),
	}, nil
}

func toSelection(keys *[]string) catalog.Selection {
	if keys == nil {
		return catalog.Unrestricted()
	}
	return catalog.Only(*keys...)
}

func fromSelection(s catalog.Selection) *[]string {
	if !s.Restricted() {
		return nil
	}
	keys := s.Keys()
	if keys == nil {
		keys = []string{}
	}
	return &keys
}

// Save writes f to path in the format implied by its extension.
// Unrestricted categories are omitted.
func Save(path string, f catalog.Filter) error {
	out := file{
		Series: fromSelection(f.Series),
		Movies: fromSelection(f.Movies),
		Live:   fromSelection(f.Live),
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create selection directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	return nil
}

// Source loads the selection file on every run, so edits apply without a
// restart.
type Source struct {
	Path string // empty: unrestricted
}

// Filter implements runner.FilterSource.
func (s Source) Filter(ctx context.Context) (catalog.Filter, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Filter{}, err
	}
	if s.Path == "" {
		return catalog.Filter{}, nil
	}
	return Load(s.Path)
}
