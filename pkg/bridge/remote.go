package bridge

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/vango-dev/navrouter/pkg/history"
	"github.com/vango-dev/navrouter/pkg/middleware"
	"github.com/vango-dev/navrouter/pkg/routepath"
)

// ErrNoClient is returned when a command is sent after the browser
// disconnected. It wraps history.ErrUnavailable.
var ErrNoClient = fmt.Errorf("bridge: no client connected: %w", history.ErrUnavailable)

// jsonWriter is the write side of a WebSocket connection.
type jsonWriter interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
}

// Remote is a History mirrored from a connected browser.
//
// PushState updates the mirror immediately, as browsers do, counting one
// more entry. The browser then reports its real history length (a push
// after going back drops forward entries) in a length message. Go only
// sends the command: the browser reports the resulting location with a pop
// message, which triggers reconciliation.
type Remote struct {
	mu           sync.Mutex
	conn         jsonWriter
	location     *url.URL
	length       int
	closed       bool
	writeTimeout time.Duration
}

func newRemote(conn jsonWriter, hello Message, writeTimeout time.Duration) (*Remote, error) {
	u, err := routepath.Parse(hello.URL)
	if err != nil {
		return nil, err
	}
	length := hello.Length
	if length < 1 {
		length = 1
	}
	return &Remote{
		conn:         conn,
		location:     u,
		length:       length,
		writeTimeout: writeTimeout,
	}, nil
}

// PushState implements history.History.
func (r *Remote) PushState(raw string) error {
	ref, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", routepath.ErrMalformedURL, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.location.ResolveReference(ref)
	if next.Scheme != r.location.Scheme || next.Host != r.location.Host {
		return fmt.Errorf("%w: %s from %s", history.ErrCrossOrigin, next, r.location)
	}
	if err := r.send(Message{Op: OpPush, URL: next.String()}); err != nil {
		return err
	}
	r.location = next
	r.length++
	return nil
}

// Go implements history.History.
func (r *Remote) Go(steps int) error {
	if steps == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.send(Message{Op: OpGo, Steps: steps})
}

// Length implements history.History.
func (r *Remote) Length() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.length
}

// Location implements history.History.
func (r *Remote) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location.String()
}

// Origin implements history.History.
func (r *Remote) Origin() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return routepath.Origin(r.location)
}

// observe applies a location reported by the browser.
func (r *Remote) observe(msg Message) error {
	u, err := routepath.Parse(msg.URL)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.location = u
	if msg.Length > 0 {
		r.length = msg.Length
	}
	return nil
}

// observeLength applies a history length reported by the browser.
func (r *Remote) observeLength(length int) {
	if length < 1 {
		return
	}
	r.mu.Lock()
	r.length = length
	r.mu.Unlock()
}

func (r *Remote) close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// send writes msg; r.mu must be held.
func (r *Remote) send(msg Message) error {
	if r.closed {
		return ErrNoClient
	}
	if r.writeTimeout > 0 {
		_ = r.conn.SetWriteDeadline(time.Now().Add(r.writeTimeout))
	}
	if err := r.conn.WriteJSON(msg); err != nil {
		middleware.RecordWebSocketError("write")
		return fmt.Errorf("bridge: write %s: %w", msg.Op, err)
	}
	middleware.RecordBridgeMessage("out", string(msg.Op))
	return nil
}

var _ history.History = (*Remote)(nil)
