package router

import "context"

// NavigationKind identifies what a Navigation does to the host history.
type NavigationKind string

const (
	// KindPush pushes a new history entry.
	KindPush NavigationKind = "push"
	// KindBack moves back in history.
	KindBack NavigationKind = "back"
	// KindForward moves forward in history.
	KindForward NavigationKind = "forward"
)

// Navigation describes one navigation passing through the middleware chain.
type Navigation struct {
	Kind NavigationKind

	// URL is the pushed URL for KindPush, empty otherwise.
	URL string

	// Steps is the history delta for KindBack and KindForward.
	Steps int
}

// Middleware wraps every navigation performed by a Navigator.
type Middleware interface {
	// Handle processes the navigation and optionally calls next.
	// Returning without calling next cancels the navigation.
	Handle(ctx context.Context, nav Navigation, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(ctx context.Context, nav Navigation, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, nav Navigation, next func() error) error {
	return f(ctx, nav, next)
}

// ComposeMiddleware runs mw in order (first to last) around handler.
func ComposeMiddleware(ctx context.Context, nav Navigation, mw []Middleware, handler func() error) error {
	if len(mw) == 0 {
		return handler()
	}

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(ctx, nav, next)
		}
	}
	return chain()
}

// Chain creates a middleware that combines multiple middleware in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, nav Navigation, next func() error) error {
		return ComposeMiddleware(ctx, nav, middleware, next)
	})
}

// Only runs mw for navigations where condition is true.
func Only(condition func(nav Navigation) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, nav Navigation, next func() error) error {
		if !condition(nav) {
			return next()
		}
		return mw.Handle(ctx, nav, next)
	})
}
