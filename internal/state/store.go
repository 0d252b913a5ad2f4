package state

import (
	"sync"

	"github.com/tatianab/element-mixer/internal/models"
)

// Store serializes dispatch to a single GameState.
type Store struct {
	mu    sync.Mutex
	state models.GameState
}

func NewStore(mode models.GameMode) *Store {
	return &Store{state: models.NewGameState(mode)}
}

// Dispatch applies actions in order, atomically with respect to other
// dispatches, and returns the resulting state.
func (s *Store) Dispatch(actions ...Action) models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	return s.state
}

// Update computes actions from the current state and applies them while
// holding the lock, so the decision and the transition cannot interleave
// with other dispatches.
func (s *Store) Update(fn func(models.GameState) []Action) models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range fn(s.state) {
		s.state = Reduce(s.state, a)
	}
	return s.state
}

// State returns the current state. Reduce never modifies collections in
// place, so the returned value is stable even as later actions land.
func (s *Store) State() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
