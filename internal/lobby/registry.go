// internal/lobby/registry.go
//
// Concurrency-safe mapping from lobby code to lobby state.
// This is a lightweight in-memory store for ephemeral game sessions:
// lobbies live for the process lifetime and are never deleted.
//
// Locking model:
//   - A registry-level RWMutex guards the map itself. Insert takes the
//     write lock so the uniqueness check and the insert are one atomic
//     step; lookups take the read lock.
//   - Each lobby carries its own RWMutex. MutateExclusive runs its body
//     under that per-lobby write lock, so writers to different lobbies
//     never contend and at most one writer touches a given lobby at a
//     time. Get snapshots under the per-lobby read lock, so readers
//     never observe a lobby mid-mutation.

package lobby

import (
	"fmt"
	"sync"
)

// entry pairs a lobby with the lock that serializes its mutations.
type entry struct {
	mu    sync.RWMutex
	lobby *Lobby
}

// Registry is the process-wide store of live lobbies.
type Registry struct {
	mu      sync.RWMutex
	lobbies map[string]*entry
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{lobbies: make(map[string]*entry)}
}

// Insert stores a new lobby under its code.
// Returns ErrConflict if the code is already taken. The check and the
// insert happen under one write lock, so two concurrent inserts of the
// same code cannot both succeed.
func (r *Registry) Insert(l *Lobby) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.lobbies[l.Code]; taken {
		return fmt.Errorf("insert lobby %s: %w", l.Code, ErrConflict)
	}
	r.lobbies[l.Code] = &entry{lobby: l}
	return nil
}

// Get returns a public snapshot of the lobby with the given code.
func (r *Registry) Get(code string) (Summary, error) {
	e, err := r.find(code)
	if err != nil {
		return Summary{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lobby.summary(), nil
}

// MutateExclusive runs fn with exclusive access to the lobby identified
// by code. This is the only sanctioned way to mutate a lobby; fn's error
// is returned as-is so operations stay atomic (fn must do all checks
// before applying any change).
func (r *Registry) MutateExclusive(code string, fn func(*Lobby) error) error {
	e, err := r.find(code)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.lobby)
}

// ReadExclusive runs fn under the lobby's read lock. Used for reads that
// need more than the public snapshot (e.g. role queries), without ever
// handing out a mutable reference.
func (r *Registry) ReadExclusive(code string, fn func(*Lobby) error) error {
	e, err := r.find(code)
	if err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.lobby)
}

// Len reports the number of lobbies ever created in this registry.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lobbies)
}

// find resolves a code to its entry under the map read lock.
func (r *Registry) find(code string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.lobbies[code]
	if !ok {
		return nil, fmt.Errorf("lobby %q: %w", code, ErrNotFound)
	}
	return e, nil
}
