package router

import (
	"strings"

	"github.com/vango-dev/navrouter/pkg/routepath"
)

// MatchResult is the outcome of a successful Match.
type MatchResult struct {
	// MatchedPath is the "/"-prefixed join of the URL segments consumed by
	// the pattern. It is empty when the pattern has no segments.
	MatchedPath string

	// Params maps each ":name" pattern segment to the URL segment it consumed.
	Params map[string]string

	// RemainingPath is the "/"-prefixed join of the URL segments beyond the
	// pattern, or "/" when the pattern consumed everything. Nested routes
	// match against it.
	RemainingPath string
}

// Bind populates target from the matched params. See ParamParser.Parse.
func (m MatchResult) Bind(target any) error {
	return NewParamParser().Parse(m.Params, target)
}

// MatchOptions configures Match.
type MatchOptions struct {
	// Exact requires the URL to have exactly as many segments as the pattern.
	// Defaults to true.
	Exact bool

	// Origin resolves relative URLs (scheme://hostname). Empty means
	// routepath.FallbackOrigin.
	Origin string

	// PreserveParamCase captures parameter values from the URL as written
	// instead of from its lower-cased form. Literal segments still compare
	// case-insensitively.
	PreserveParamCase bool
}

// MatchOption is a functional option for Match.
type MatchOption func(*MatchOptions)

// Exact requires the segment counts of URL and pattern to be equal.
func Exact() MatchOption {
	return WithExact(true)
}

// Prefix allows the URL to have more segments than the pattern.
func Prefix() MatchOption {
	return WithExact(false)
}

// WithExact sets whether the match must be exact.
func WithExact(exact bool) MatchOption {
	return func(o *MatchOptions) {
		o.Exact = exact
	}
}

// WithOrigin sets the origin used to resolve relative URLs.
func WithOrigin(origin string) MatchOption {
	return func(o *MatchOptions) {
		o.Origin = origin
	}
}

// PreserveParamCase keeps the original casing of captured parameter values.
func PreserveParamCase() MatchOption {
	return func(o *MatchOptions) {
		o.PreserveParamCase = true
	}
}

// Match compares url against pattern segment by segment.
//
// A pattern segment of the form ":name" matches any single URL segment and
// binds it under name; any other segment must equal the URL segment,
// ignoring case. Matching runs left to right and stops at the first
// mismatching literal. The boolean result reports whether the pattern
// matched. An error is returned only when url cannot be parsed; it wraps
// routepath.ErrMalformedURL.
func Match(url, pattern string, opts ...MatchOption) (MatchResult, bool, error) {
	options := MatchOptions{Exact: true}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}

	urlSegs, err := urlSegments(url, options)
	if err != nil {
		return MatchResult{}, false, err
	}
	patternSegs := patternSegments(pattern)

	if len(urlSegs) < len(patternSegs) ||
		(options.Exact && len(urlSegs) != len(patternSegs)) {
		return MatchResult{}, false, nil
	}

	result := MatchResult{Params: make(map[string]string)}
	var matched strings.Builder
	for i, pat := range patternSegs {
		seg := urlSegs[i]
		if name, ok := strings.CutPrefix(pat, ":"); ok {
			result.Params[name] = seg
		} else if !strings.EqualFold(pat, seg) {
			return MatchResult{}, false, nil
		}
		matched.WriteString("/")
		matched.WriteString(seg)
	}

	result.MatchedPath = matched.String()
	result.RemainingPath = routepath.JoinSegments(urlSegs[len(patternSegs):])
	return result, true, nil
}

// urlSegments normalizes, parses and splits url.
func urlSegments(url string, options MatchOptions) ([]string, error) {
	normalized := routepath.Normalize(url, options.Origin)
	if options.PreserveParamCase {
		normalized = routepath.NormalizePreserveCase(url, options.Origin)
	}
	u, err := routepath.Parse(normalized)
	if err != nil {
		return nil, err
	}
	return routepath.Segments(routepath.PathOf(u)), nil
}

// patternSegments lower-cases and splits a route pattern.
func patternSegments(pattern string) []string {
	pattern = strings.ToLower(pattern)
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}
	return routepath.Segments(pattern)
}

// URLSource provides the current routing URL.
// routestate.Store implements it.
type URLSource interface {
	URL() string
}

// MatchExactURL matches the current URL of src exactly against pattern and
// returns fn applied to the result. On no match it returns the zero T and
// false, so callers can try the next pattern.
func MatchExactURL[T any](src URLSource, pattern string, fn func(MatchResult) T, opts ...MatchOption) (T, bool, error) {
	return matchWith(src, pattern, fn, opts, Exact())
}

// MatchURL is MatchExactURL with prefix semantics: the current URL may have
// more segments than pattern, exposed through RemainingPath.
func MatchURL[T any](src URLSource, pattern string, fn func(MatchResult) T, opts ...MatchOption) (T, bool, error) {
	return matchWith(src, pattern, fn, opts, Prefix())
}

func matchWith[T any](src URLSource, pattern string, fn func(MatchResult) T, opts []MatchOption, mode MatchOption) (T, bool, error) {
	var zero T
	all := make([]MatchOption, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, mode)
	result, ok, err := Match(src.URL(), pattern, all...)
	if err != nil || !ok {
		return zero, false, err
	}
	return fn(result), true, nil
}
