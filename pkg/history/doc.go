// Package history defines the host history service used by the router and
// provides an in-memory implementation for headless execution and tests.
//
// A browser exposes the same capabilities through window.history and
// window.location; package bridge implements History on top of a connected
// browser.
package history
