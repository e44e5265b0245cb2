package routestate

import (
	"log/slog"
	"sync"
)

// Location reports the host's current URL.
// history.History implements it.
type Location interface {
	Location() string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// Dispatcher connects navigation code to the active Store.
//
// It holds at most one attached Store and at most one queued URL. The queue
// is only written while no Store is attached and is drained by the next
// Mount.
//
// Reconciliation is serialized: reading the host location and loading it
// into the store happen as one step, so concurrent callers cannot leave an
// older location in the store. Store subscribers run inside that step and
// must not call UpdateRoute or Mount synchronously.
type Dispatcher struct {
	host   Location
	logger *slog.Logger

	// reconcileMu is held across host read and store write.
	reconcileMu sync.Mutex

	mu        sync.Mutex
	active    *Store
	queued    string
	hasQueued bool
}

// NewDispatcher creates a dispatcher reading the current URL from host.
func NewDispatcher(host Location, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{host: host}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Mount attaches s as the active store, replacing any previous one, and
// drains the queued update into it. It returns the applied URL, if any.
func (d *Dispatcher) Mount(s *Store) (applied string, ok bool) {
	d.mu.Lock()
	d.active = s
	d.mu.Unlock()
	return d.DrainQueuedUpdate()
}

// Unmount detaches s if it is still the active store. A stale store
// cannot detach its replacement.
func (d *Dispatcher) Unmount(s *Store) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == s {
		d.active = nil
	}
}

// DrainQueuedUpdate applies the queued URL to the active store when it
// differs from the store's URL. The queue is cleared whenever a store is
// attached, so an update is applied at most once.
func (d *Dispatcher) DrainQueuedUpdate() (string, bool) {
	d.reconcileMu.Lock()
	defer d.reconcileMu.Unlock()

	d.mu.Lock()
	s := d.active
	if s == nil || !d.hasQueued {
		d.mu.Unlock()
		return "", false
	}
	url := d.queued
	d.queued, d.hasQueued = "", false
	d.mu.Unlock()

	if s.URL() == url {
		return "", false
	}
	d.logger.Debug("applied queued route", "url", url)
	s.load(url)
	return url, true
}

// UpdateRoute reconciles against the host location. The active store is
// moved to the loaded state when its URL differs from the host's; with no
// store attached the host URL is queued for the next Mount.
func (d *Dispatcher) UpdateRoute() {
	d.reconcileMu.Lock()
	defer d.reconcileMu.Unlock()

	url := d.host.Location()

	d.mu.Lock()
	s := d.active
	if s == nil {
		d.queued, d.hasQueued = url, true
		d.mu.Unlock()
		d.logger.Debug("queued route, no store mounted", "url", url)
		return
	}
	d.mu.Unlock()

	if s.URL() == url {
		return
	}
	s.load(url)
	d.logger.Debug("route updated", "url", url)
}

// Active returns the attached store, or nil.
func (d *Dispatcher) Active() *Store {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Queued returns the pending URL, if any.
func (d *Dispatcher) Queued() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queued, d.hasQueued
}
