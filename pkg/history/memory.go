package history

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/vango-dev/navrouter/pkg/routepath"
)

// ErrCrossOrigin is returned when a pushed URL has a different scheme or
// host than the current entry.
var ErrCrossOrigin = errors.New("cross-origin history push")

// Memory is an in-process History.
// Entries are absolute URLs; the zero value is not usable, use NewMemory.
type Memory struct {
	mu      sync.Mutex
	entries []*url.URL
	index   int
	onPop   func(url string)
}

// MemoryOption configures a Memory.
type MemoryOption func(*Memory)

// OnPop registers fn to run after Go moves to another entry, like a
// browser's popstate. It is called without the lock held.
func OnPop(fn func(url string)) MemoryOption {
	return func(m *Memory) {
		m.onPop = fn
	}
}

// NewMemory creates a history whose single entry is start.
// A relative start resolves against routepath.FallbackOrigin.
func NewMemory(start string, opts ...MemoryOption) (*Memory, error) {
	u, err := parseEntry(start)
	if err != nil {
		return nil, err
	}
	m := &Memory{entries: []*url.URL{u}}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func parseEntry(raw string) (*url.URL, error) {
	if !routepath.IsAbsolute(raw) {
		raw = routepath.FallbackOrigin + "/" + trimLeadingSlash(raw)
	}
	return routepath.Parse(raw)
}

func trimLeadingSlash(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	return s
}

// PushState implements History.
func (m *Memory) PushState(raw string) error {
	ref, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", routepath.ErrMalformedURL, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.entries[m.index]
	next := current.ResolveReference(ref)
	if _, err := routepath.Parse(next.String()); err != nil {
		return err
	}
	if next.Scheme != current.Scheme || next.Host != current.Host {
		return fmt.Errorf("%w: %s from %s", ErrCrossOrigin, next, current)
	}
	m.entries = append(m.entries[:m.index+1], next)
	m.index = len(m.entries) - 1
	return nil
}

// Go implements History.
func (m *Memory) Go(steps int) error {
	m.mu.Lock()
	target := m.index + steps
	if steps == 0 || target < 0 || target >= len(m.entries) {
		m.mu.Unlock()
		return nil
	}
	m.index = target
	loc := m.entries[target].String()
	onPop := m.onPop
	m.mu.Unlock()

	if onPop != nil {
		onPop(loc)
	}
	return nil
}

// Back is Go(-1).
func (m *Memory) Back() error {
	return m.Go(-1)
}

// Forward is Go(1).
func (m *Memory) Forward() error {
	return m.Go(1)
}

// Length implements History.
func (m *Memory) Length() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Location implements History.
func (m *Memory) Location() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.index].String()
}

// Origin implements History.
func (m *Memory) Origin() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return routepath.Origin(m.entries[m.index])
}

// Entries returns a copy of all entry URLs, oldest first, and the index of
// the current one.
func (m *Memory) Entries() ([]string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.entries))
	for i, u := range m.entries {
		out[i] = u.String()
	}
	return out, m.index
}

var _ History = (*Memory)(nil)
