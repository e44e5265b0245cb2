// Package router matches URLs against route patterns and performs
// client-side navigation.
//
// # Patterns
//
// A pattern is a "/"-separated list of segments. A segment of the form
// ":name" matches any single URL segment and captures it; any other segment
// must equal the URL segment, ignoring case:
//
//	res, ok, err := router.Match("/users/42/profile", "/users/:id", router.Prefix())
//	// ok == true
//	// res.Params["id"] == "42"
//	// res.MatchedPath == "/users/42"
//	// res.RemainingPath == "/profile"
//
// Match is exact by default; Prefix() allows trailing segments, which are
// reported in RemainingPath so nested routes can match against it.
//
// # Current URL
//
// MatchURL and MatchExactURL match against the current routing URL and apply
// a projection only on success, so patterns can be tried in turn:
//
//	if page, ok, _ := router.MatchExactURL(store, "/users/:id", userPage); ok {
//	    return page
//	}
//	if page, ok, _ := router.MatchURL(store, "/settings", settingsPage); ok {
//	    return page
//	}
//
// # Navigation
//
// A Navigator pushes to the host history, then reconciles routing state:
//
//	nav := router.NewNavigator(hist, dispatcher)
//	nav.NavigateTo(ctx, "/users/42")
//	nav.GoBack(ctx)
//
//	link := nav.Link("/about") // link.OnClick(ev) prevents default and navigates
package router
