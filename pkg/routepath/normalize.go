package routepath

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// FallbackOrigin is used to resolve relative inputs when no host origin is
// available (headless execution).
const FallbackOrigin = "http://localhost"

// ErrMalformedURL is returned when a normalized URL cannot be parsed as an
// absolute URL.
var ErrMalformedURL = errors.New("malformed url")

// absolutePrefixes are the schemes recognized as already absolute.
var absolutePrefixes = []string{"http://", "https://"}

// IsAbsolute reports whether raw starts with http:// or https://, ignoring case.
func IsAbsolute(raw string) bool {
	lower := strings.ToLower(raw)
	for _, prefix := range absolutePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// Normalize turns raw into an absolute, lower-cased URL string.
//
// Absolute inputs are only lower-cased. Anything else is joined to origin
// with exactly one "/" between them; an empty origin means FallbackOrigin.
// Normalize never fails; the result may still be rejected by Parse.
func Normalize(raw, origin string) string {
	lower := strings.ToLower(raw)
	if IsAbsolute(lower) {
		return lower
	}
	return strings.ToLower(join(origin, lower))
}

// NormalizePreserveCase is Normalize without lower-casing the path of a
// relative input or the whole of an absolute one. It is used when captured
// parameter values must keep their casing.
func NormalizePreserveCase(raw, origin string) string {
	if IsAbsolute(raw) {
		return raw
	}
	return join(strings.ToLower(origin), raw)
}

func join(origin, path string) string {
	if origin == "" {
		origin = FallbackOrigin
	}
	origin = strings.TrimSuffix(origin, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return origin + path
}

// Parse parses a normalized URL. The result always has a scheme and a host.
func Parse(normalized string) (*url.URL, error) {
	u, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrMalformedURL, normalized)
	}
	return u, nil
}

// Origin returns scheme://hostname for u. The port is not included.
func Origin(u *url.URL) string {
	if u == nil || u.Scheme == "" {
		return ""
	}
	return u.Scheme + "://" + u.Hostname()
}

// PathOf returns the escaped path of u, or "/" when it is empty.
func PathOf(u *url.URL) string {
	p := u.EscapedPath()
	if p == "" {
		return "/"
	}
	return p
}
