// Package bridge makes a connected browser the host history of a router.
//
// The browser runs a small client script (served at /navrouter.js) that
// opens a WebSocket, reports its location, forwards popstate events and
// applies push/go commands. On the server each connection becomes a Session
// with its own Remote history, Dispatcher, Store and Navigator:
//
//	srv := bridge.New(bridge.Config{
//	    OnSession: func(s *bridge.Session) {
//	        s.Store.Subscribe(func(st routestate.State) { render(s, st.URL) })
//	    },
//	})
//	http.ListenAndServe(":8080", srv)
//
// Protocol (JSON text frames):
//
//	client → server  {"op":"hello","url":"https://app.test/a","length":1}
//	client → server  {"op":"pop","url":"https://app.test/a","length":2}
//	client → server  {"op":"length","length":2}  (after applying a push)
//	server → client  {"op":"push","url":"https://app.test/b"}
//	server → client  {"op":"go","steps":-1}
package bridge
