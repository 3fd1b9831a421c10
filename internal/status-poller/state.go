package status_poller

import (
	"sync"
	"time"
)

const (
	DetailNoNetwork       = "No internet connection"
	DetailUnexpectedError = "Unexpected error occurred"
)

// ConnectionState is the poller's current belief about backend reachability.
type ConnectionState struct {
	Connected     bool
	Detail        string
	LastCheckedAt time.Time
	// Health is the payload of the probe that produced the state, nil unless Connected.
	Health *HealthStatus
	// Err is the failure behind a disconnected state; nil for network loss.
	Err error
}

type StateStore struct {
	mu    sync.RWMutex
	state ConnectionState
}

func NewStateStore() *StateStore {
	return &StateStore{}
}

func (s *StateStore) Get() ConnectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the state and returns the previous one.
func (s *StateStore) Set(state ConnectionState) ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state
	s.state = state
	return prev
}
