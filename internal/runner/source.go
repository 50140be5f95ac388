package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vmunix/m3ustrm/internal/catalog"
	"github.com/vmunix/m3ustrm/internal/fingerprint"
)

// FileSource reads the playlist from a local file.
type FileSource struct {
	Path string
}

// Open opens the playlist file.
func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open playlist %s: %w", s.Path, err)
	}
	return f, nil
}

// MaterializerFunc adapts a function to the Materializer interface.
type MaterializerFunc func(ctx context.Context, c *catalog.Catalog, changes fingerprint.Changes) error

func (f MaterializerFunc) Materialize(ctx context.Context, c *catalog.Catalog, changes fingerprint.Changes) error {
	return f(ctx, c, changes)
}
