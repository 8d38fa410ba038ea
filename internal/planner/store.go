package planner

import (
	"maps"

	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

// SelectionStore holds the user's choice per date. Absent keys read as None;
// None is never stored.
//
// The store is not safe for concurrent use, the owning Session serialises
// access.
type SelectionStore struct {
	selections map[domain.DateKey]domain.SelectionState
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{selections: make(map[domain.DateKey]domain.SelectionState)}
}

func (s *SelectionStore) Get(key domain.DateKey) domain.SelectionState {
	return s.selections[key]
}

// Set overwrites unconditionally; setting None clears the entry.
func (s *SelectionStore) Set(key domain.DateKey, state domain.SelectionState) {
	if state == domain.SelectionNone {
		delete(s.selections, key)
		return
	}
	s.selections[key] = state
}

// Toggle clears the day when it already holds the requested kind and
// otherwise replaces whatever it held. Requesting None changes nothing.
func (s *SelectionStore) Toggle(key domain.DateKey, kind domain.SelectionState) domain.SelectionState {
	current := s.Get(key)
	if kind == domain.SelectionNone {
		return current
	}

	next := kind
	if current == kind {
		next = domain.SelectionNone
	}
	s.Set(key, next)

	return next
}

func (s *SelectionStore) Clear() {
	clear(s.selections)
}

func (s *SelectionStore) Len() int {
	return len(s.selections)
}

// Snapshot returns a copy the caller may keep.
func (s *SelectionStore) Snapshot() map[domain.DateKey]domain.SelectionState {
	return maps.Clone(s.selections)
}
