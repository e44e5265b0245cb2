package router

import "testing"

// BenchmarkMatchStatic benchmarks matching a static pattern.
func BenchmarkMatchStatic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Match("/about", "/about")
	}
}

// BenchmarkMatchParam benchmarks matching a parameterized pattern.
func BenchmarkMatchParam(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Match("/users/123", "/users/:id")
	}
}

// BenchmarkMatchMultipleParams benchmarks matching multiple parameters.
func BenchmarkMatchMultipleParams(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Match("/users/1/posts/2/comments/3", "/users/:userId/posts/:postId/comments/:commentId")
	}
}

// BenchmarkMatchAbsoluteURL benchmarks matching an absolute URL with a query.
func BenchmarkMatchAbsoluteURL(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Match("https://app.test/Users/123?tab=posts", "/users/:id", Prefix())
	}
}

// BenchmarkParamParse benchmarks binding params into a struct.
func BenchmarkParamParse(b *testing.B) {
	type params struct {
		ID   int    `param:"id"`
		Slug string `param:"slug"`
	}
	parser := NewParamParser()
	raw := map[string]string{"id": "42", "slug": "hello"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var p params
		parser.Parse(raw, &p)
	}
}
