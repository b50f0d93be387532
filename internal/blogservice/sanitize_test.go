package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeContent(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "<p>Hello, World!</p>",
			want:  "<p>Hello, World!</p>",
		},
		{
			name:  "script tag",
			input: "<script>alert('Hello, World!');</script>",
			want:  "",
		},
		{
			name:  "multiple script tags",
			input: "<p>Here</p><script>alert(1);</script><p>More</p><SCRIPT SRC=\"evil.js\"></SCRIPT>",
			want:  "<p>Here</p><p>More</p>",
		},
		{
			name:  "multiline script",
			input: "<p>a</p><script>\nalert(1);\n</script>",
			want:  "<p>a</p>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeContent(tc.input))
		})
	}
}

func TestSearchQuery(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single term", input: "golang", want: "golang:*"},
		{name: "several terms", input: "  go   concurrency ", want: "go:* | concurrency:*"},
		{name: "operators stripped", input: "go & !rust | (c)", want: "go:* | rust:* | c:*"},
		{name: "only punctuation", input: "&& ||", want: ""},
		{name: "unicode", input: "café", want: "café:*"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, searchQuery(tc.input))
		})
	}
}
