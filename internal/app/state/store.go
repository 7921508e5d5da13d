// internal/app/state/store.go
package state

import (
	"sync"

	"go.uber.org/zap"
)

// Listener observes one transition. prev and next are snapshots; neither
// may be modified.
type Listener func(prev, next State, a Action)

// Store holds the current State and serializes every transition through
// Reduce. Each Dispatch runs to completion before the next one starts, so
// no transition ever sees another half applied.
type Store struct {
	mu        sync.Mutex
	state     State
	nextID    int
	listeners map[int]Listener
	log       *zap.Logger
}

// NewStore returns a Store holding Initial().
func NewStore(logger *zap.Logger) *Store {
	return NewStoreWith(Initial(), logger)
}

// NewStoreWith returns a Store holding s.
func NewStoreWith(s State, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		state:     s,
		listeners: make(map[int]Listener),
		log:       logger,
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and returns the resulting snapshot. Listeners run
// after the lock is released, so a listener may dispatch.
func (s *Store) Dispatch(a Action) State {
	if a == nil {
		return s.State()
	}

	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, a)
	s.state = next
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	if _, unknown := a.(Unknown); unknown {
		s.log.Debug("ignored unrecognized action", zap.String("type", a.Type()))
	} else {
		s.log.Debug("action dispatched", zap.String("type", a.Type()))
	}

	for _, l := range ls {
		l(prev, next, a)
	}
	return next
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}
