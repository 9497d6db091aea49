package dispatch

import (
	"context"
	"sync"

	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

// Phase is the observable lifecycle state of one operation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseSucceeded
	PhaseFailed
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseInFlight:
		return "in_flight"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Store reduces dispatched actions into a per-operation phase, keeping the
// shape of in-flight / succeeded / failed visible to the rest of the
// application. Subscribe its Apply method on a dispatcher:
//
//	store := dispatch.NewStore()
//	d.Subscribe(store.Apply)
//
// A fresh dispatch of the same operation moves its phase back through
// InFlight, replacing the previous terminal state.
type Store struct {
	mu     sync.RWMutex
	phases map[mdmapi.ActionType]Phase
	errs   map[mdmapi.ActionType]error
}

// NewStore creates an empty store; every operation starts at PhaseIdle.
func NewStore() *Store {
	return &Store{
		phases: make(map[mdmapi.ActionType]Phase),
		errs:   make(map[mdmapi.ActionType]error),
	}
}

// Apply is a Handler that folds one action into the store.
func (s *Store) Apply(_ context.Context, action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := action.Types.Request

	switch action.Type {
	case action.Types.Request:
		s.phases[key] = PhaseInFlight
		delete(s.errs, key)
	case action.Types.Success:
		s.phases[key] = PhaseSucceeded
	case action.Types.Failure:
		s.phases[key] = PhaseFailed
		s.errs[key] = action.Err
	}
}

// Phase returns the current phase of the operation t describes.
func (s *Store) Phase(t mdmapi.Triad) Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.phases[t.Request]
}

// Err returns the failure error of the operation t describes, or nil if its
// last dispatch did not fail.
func (s *Store) Err(t mdmapi.Triad) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.errs[t.Request]
}
