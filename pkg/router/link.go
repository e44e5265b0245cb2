package router

import "context"

// Event is the activation event of a link-like element.
type Event interface {
	// PreventDefault suppresses the element's default navigation.
	PreventDefault()
}

// ClickHandler returns an activation handler for a link to url.
// The handler suppresses the default navigation and performs the same
// push and reconcile as NavigateTo. Failures are logged.
func (n *Navigator) ClickHandler(url string) func(Event) {
	return func(ev Event) {
		if ev != nil {
			ev.PreventDefault()
		}
		if err := n.NavigateTo(context.Background(), url); err != nil {
			n.logger.Warn("link navigation failed", "url", url, "error", err)
		}
	}
}

// Link describes an anchor bound to client-side navigation.
// Rendering is left to the presentation layer.
type Link struct {
	Href    string
	OnClick func(Event)
}

// Link creates a Link for href whose OnClick navigates through n.
func (n *Navigator) Link(href string) Link {
	return Link{Href: href, OnClick: n.ClickHandler(href)}
}
