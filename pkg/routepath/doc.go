// Package routepath normalizes URLs and splits paths into segments for
// client-side route matching.
//
// Inputs may be absolute ("https://example.com/Users/42") or relative
// ("/users/42", "users/42"). Relative inputs are resolved against the host
// origin, or against FallbackOrigin when no host is available:
//
//	n := routepath.Normalize("/Users/42", "https://example.com")
//	// n == "https://example.com/users/42"
//
//	u, err := routepath.Parse(n)
//	if err != nil {
//	    // errors.Is(err, routepath.ErrMalformedURL)
//	}
//	segs := routepath.Segments(routepath.PathOf(u)) // ["users", "42"]
package routepath
