package routepath

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		origin string
		want   string
	}{
		{
			name: "absolute http lower-cased",
			raw:  "HTTP://Example.COM/Users/42",
			want: "http://example.com/users/42",
		},
		{
			name:   "absolute https ignores origin",
			raw:    "https://a.test/x",
			origin: "http://b.test",
			want:   "https://a.test/x",
		},
		{
			name:   "relative with leading slash",
			raw:    "/Users/42",
			origin: "https://example.com",
			want:   "https://example.com/users/42",
		},
		{
			name:   "relative without leading slash",
			raw:    "users/42",
			origin: "https://example.com",
			want:   "https://example.com/users/42",
		},
		{
			name: "fallback origin",
			raw:  "/a",
			want: "http://localhost/a",
		},
		{
			name: "empty input",
			raw:  "",
			want: "http://localhost/",
		},
		{
			name:   "origin with trailing slash",
			raw:    "/a",
			origin: "http://example.com/",
			want:   "http://example.com/a",
		},
		{
			name:   "mixed case origin",
			raw:    "/a",
			origin: "HTTP://Example.com",
			want:   "http://example.com/a",
		},
		{
			name: "ftp is treated as a path",
			raw:  "ftp://x",
			want: "http://localhost/ftp://x",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.raw, tc.origin); got != tc.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tc.raw, tc.origin, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"/Users/42", "a/B/c", "HTTPS://X.test/Y", ""}
	for _, in := range inputs {
		once := Normalize(in, "http://host.test")
		twice := Normalize(once, "http://other.test")
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizePreserveCase(t *testing.T) {
	if got := NormalizePreserveCase("/Users/AbC", "HTTP://Host.test"); got != "http://host.test/Users/AbC" {
		t.Errorf("NormalizePreserveCase relative = %q", got)
	}
	if got := NormalizePreserveCase("https://Host.test/AbC", ""); got != "https://Host.test/AbC" {
		t.Errorf("NormalizePreserveCase absolute = %q", got)
	}
}

func TestParse(t *testing.T) {
	u, err := Parse("http://localhost/users/42?tab=1#top")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if PathOf(u) != "/users/42" {
		t.Errorf("PathOf = %q, want /users/42", PathOf(u))
	}
	if Origin(u) != "http://localhost" {
		t.Errorf("Origin = %q, want http://localhost", Origin(u))
	}

	u, err = Parse("http://localhost")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if PathOf(u) != "/" {
		t.Errorf("PathOf(empty path) = %q, want /", PathOf(u))
	}
}

func TestParseMalformed(t *testing.T) {
	inputs := []string{
		"http://localhost/%zz",
		"http://[::1",
		"/relative/only",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		if !errors.Is(err, ErrMalformedURL) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformedURL", in, err)
		}
	}
}

func TestOriginDropsPort(t *testing.T) {
	u, err := Parse("https://example.com:8443/a")
	if err != nil {
		t.Fatal(err)
	}
	if got := Origin(u); got != "https://example.com" {
		t.Errorf("Origin = %q, want https://example.com", got)
	}
	if Origin(nil) != "" {
		t.Error("Origin(nil) should be empty")
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", nil},
		{"/", nil},
		{"/users", []string{"users"}},
		{"/users/", []string{"users"}},
		{"/users/42/profile", []string{"users", "42", "profile"}},
		{"/a//b", []string{"a", "", "b"}},
		{"//", []string{""}},
	}
	for _, tc := range tests {
		got := Segments(tc.path)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Segments(%q) = %#v, want %#v", tc.path, got, tc.want)
		}
	}
}

func TestJoinSegments(t *testing.T) {
	if got := JoinSegments(nil); got != "/" {
		t.Errorf("JoinSegments(nil) = %q, want /", got)
	}
	if got := JoinSegments([]string{"a", "b"}); got != "/a/b" {
		t.Errorf("JoinSegments = %q, want /a/b", got)
	}
}
