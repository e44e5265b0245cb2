package routestate

import (
	"slices"
	"sync"
)

// State is a snapshot of routing state.
type State struct {
	// URL is the current absolute URL. Empty until the first reconciliation.
	URL string

	// HasLoaded becomes true on the first reconciliation and stays true.
	HasLoaded bool
}

// Store holds routing state and notifies subscribers of changes.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[uint64]func(State)
	nextID uint64
}

// NewStore creates a store in the not-loaded state.
func NewStore() *Store {
	return &Store{subs: make(map[uint64]func(State))}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// URL returns the current URL.
func (s *Store) URL() string {
	return s.State().URL
}

// SetState replaces the state with fn(current). Subscribers run
// synchronously after the write when the state changed. Once loaded, the
// store stays loaded whatever fn returns.
func (s *Store) SetState(fn func(State) State) {
	s.mu.Lock()
	prev := s.state
	next := fn(prev)
	if prev.HasLoaded {
		next.HasLoaded = true
	}
	s.state = next
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if next == prev {
		return
	}
	for _, fn := range subs {
		fn(next)
	}
}

// load moves the store to the loaded state with url.
func (s *Store) load(url string) {
	s.SetState(func(st State) State {
		st.URL = url
		st.HasLoaded = true
		return st
	})
}

// Subscribe registers fn to receive every new state.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) snapshotSubs() []func(State) {
	if len(s.subs) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(State), len(ids))
	for i, id := range ids {
		out[i] = s.subs[id]
	}
	return out
}
