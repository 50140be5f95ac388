package fingerprint

import (
	"context"
	"sync"
)

// Store persists the digests of the last successful run.
type Store interface {
	// Load returns the stored digests. ok is false when nothing has been
	// stored yet.
	Load(ctx context.Context) (d Digests, ok bool, err error)
	Save(ctx context.Context, d Digests) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	digests Digests
	ok      bool

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (Digests, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return Digests{}, false, m.LoadErr
	}
	return m.digests, m.ok, nil
}

func (m *MemoryStore) Save(_ context.Context, d Digests) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.digests, m.ok = d, true
	return nil
}
