package routepath

import "strings"

// Segments splits a path on "/".
//
// The empty segment produced by a leading "/" is dropped, as is a single
// empty segment produced by a trailing "/". Interior empty segments
// ("/a//b") are kept.
func Segments(path string) []string {
	if path == "" || path == "/" {
		return nil
	}
	parts := strings.Split(path, "/")
	parts = parts[1:]
	if strings.HasSuffix(path, "/") && len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// JoinSegments joins segments into a "/"-prefixed path. No segments gives "/".
func JoinSegments(segs []string) string {
	return "/" + strings.Join(segs, "/")
}
