package bridge

// Op is a bridge message type.
type Op string

const (
	// OpHello is the first client message, carrying the initial location.
	OpHello Op = "hello"
	// OpPop reports a location change made by the browser (popstate).
	OpPop Op = "pop"
	// OpLength reports the browser's history length after a push.
	OpLength Op = "length"
	// OpPush asks the browser to push a history entry.
	OpPush Op = "push"
	// OpGo asks the browser to move through history.
	OpGo Op = "go"
)

// Message is one bridge frame.
type Message struct {
	Op     Op     `json:"op"`
	URL    string `json:"url,omitempty"`
	Steps  int    `json:"steps,omitempty"`
	Length int    `json:"length,omitempty"`
}
