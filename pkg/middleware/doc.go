// Package middleware provides navigation middleware for observability.
//
//   - Prometheus: counts and times navigations
//   - OpenTelemetry: traces each navigation as a span
//
// Both plug into router.NewNavigator:
//
//	nav := router.NewNavigator(hist, dispatcher,
//	    router.WithMiddleware(
//	        middleware.Prometheus(middleware.WithNamespace("myapp")),
//	        middleware.OpenTelemetry(),
//	    ),
//	)
package middleware
