// Package localstore persists the device-local copy of the onboarding
// session snapshot. It is a single-slot key-value store: one serialized
// snapshot per device, regardless of user. Ownership checks against the
// snapshot's userId happen above this package.
package localstore

import (
	"context"
	"sync"
)

// Store holds at most one serialized session snapshot.
type Store interface {
	// Read returns the stored snapshot, or nil when none is stored.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored snapshot.
	Write(ctx context.Context, snapshot []byte) error
	// Clear removes the stored snapshot. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	// Close releases any resources held by the store.
	Close() error
}

// Memory is an in-process Store used in tests and as a fallback when no
// durable cache path is configured.
type Memory struct {
	mu       sync.Mutex
	snapshot []byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Read returns the stored snapshot, or nil when none is stored.
func (m *Memory) Read(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil, nil
	}
	out := make([]byte, len(m.snapshot))
	copy(out, m.snapshot)
	return out, nil
}

// Write replaces the stored snapshot.
func (m *Memory) Write(_ context.Context, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = make([]byte, len(snapshot))
	copy(m.snapshot, snapshot)
	return nil
}

// Clear removes the stored snapshot.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = nil
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
