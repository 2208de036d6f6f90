package state

import (
	"errors"
	"reflect"
	"sync"
)

// Store keeps the last applied table state. The renderer itself never
// deduplicates frames; Store.Apply is the caller-side equality check.
type Store struct {
	mu      sync.RWMutex
	current TableState
	applied bool
}

func NewStore() *Store {
	return &Store{}
}

func (store *Store) Snapshot() TableState {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.current.Clone()
}

// Applied reports whether a state has been stored since creation or Reset.
func (store *Store) Applied() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.applied
}

// Changed reports whether next differs from the stored state.
func (store *Store) Changed(next TableState) bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	if !store.applied {
		return true
	}
	return !reflect.DeepEqual(store.current, next)
}

// Apply stores next when it differs from the current state. It returns
// whether the state changed and any invariant violations found; the state
// is stored even when violations are reported.
func (store *Store) Apply(next TableState) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.applied && reflect.DeepEqual(store.current, next) {
		return false, nil
	}
	err := next.Validate()
	if store.applied {
		err = errors.Join(err, ValidateTransition(store.current, next))
	}
	store.current = next.Clone()
	store.applied = true
	return true, err
}

// Reset forgets the stored state so the next Apply always reports a change.
func (store *Store) Reset() {
	store.mu.Lock()
	store.current = TableState{}
	store.applied = false
	store.mu.Unlock()
}
