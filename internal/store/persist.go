package store

import (
	"context"

	"github.com/cartscan/cartscan/internal/model"
)

// Persister is the persistence collaborator: a key-value blob store
// holding the serialized list under a single key.
//
// Load returns an empty snapshot (not an error) when no state exists yet;
// implementations reserve errors for genuine I/O failures. Save replaces
// the stored snapshot wholesale.
type Persister interface {
	// Load reads the persisted snapshot.
	Load(ctx context.Context) (model.Snapshot, error)

	// Save writes the full snapshot, replacing any previous state.
	Save(ctx context.Context, snapshot model.Snapshot) error
}

// MemoryPersister is an in-process Persister used in tests and as a
// stand-in when persistence is disabled. It records how many times Save
// was called so tests can assert the write-through contract.
type MemoryPersister struct {
	// Snapshot is the last saved state.
	Snapshot model.Snapshot

	// SaveCalls counts Save invocations.
	SaveCalls int

	// LoadErr, when set, is returned by Load.
	LoadErr error

	// SaveErr, when set, is returned by Save.
	SaveErr error
}

// Load implements Persister.
func (m *MemoryPersister) Load(_ context.Context) (model.Snapshot, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Snapshot.Clone(), nil
}

// Save implements Persister.
func (m *MemoryPersister) Save(_ context.Context, snapshot model.Snapshot) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Snapshot = snapshot.Clone()
	return nil
}
