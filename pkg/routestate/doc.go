// Package routestate holds the current routing URL as shared state and
// reconciles it against the host location.
//
// A Store is the state a rendering layer subscribes to. A Dispatcher is the
// single slot through which navigation code, which lives outside the
// subscription tree, reaches the active Store:
//
//	d := routestate.NewDispatcher(hist)
//	store := routestate.NewStore()
//	d.Mount(store)          // attach; applies an update queued while unmounted
//	defer d.Unmount(store)
//
//	unsubscribe := store.Subscribe(func(s routestate.State) {
//	    render(s.URL)
//	})
//	defer unsubscribe()
//
//	hist.PushState("/users/42")
//	d.UpdateRoute()         // store.State() == {URL: ".../users/42", HasLoaded: true}
//
// When UpdateRoute runs before any Store is mounted, the host URL is queued
// and applied by the next Mount.
package routestate
