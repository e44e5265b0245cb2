package history

import "errors"

// ErrUnavailable is wrapped by errors from hosts that can no longer reach
// their history, such as a disconnected browser.
var ErrUnavailable = errors.New("history: host unavailable")

// History is the host history service.
type History interface {
	// PushState adds an entry for url without reloading.
	// Relative URLs resolve against the current entry.
	PushState(url string) error

	// Go moves steps entries through history; negative is back.
	// Moves past either end are ignored.
	Go(steps int) error

	// Length returns the number of history entries.
	Length() int

	// Location returns the absolute URL of the current entry.
	Location() string

	// Origin returns scheme://hostname of the current entry.
	Origin() string
}
