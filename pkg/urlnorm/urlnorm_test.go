package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tracking params removed",
			in:   "https://example.com/a?utm_source=x&utm_medium=mail&fbclid=abc",
			want: "https://example.com/a",
		},
		{
			name: "meaningful params kept",
			in:   "https://example.com/a?id=42&utm_campaign=x",
			want: "https://example.com/a?id=42",
		},
		{
			name: "host lowercased",
			in:   "https://Example.COM/Article",
			want: "https://example.com/Article",
		},
		{
			name: "fragment stripped",
			in:   "https://example.com/a#comments",
			want: "https://example.com/a",
		},
		{
			name: "trailing slash dropped on non-root path",
			in:   "https://example.com/a/",
			want: "https://example.com/a",
		},
		{
			name: "root path untouched",
			in:   "https://example.com/",
			want: "https://example.com/",
		},
		{
			name: "mobile host prefix collapsed",
			in:   "https://m.example.com/a",
			want: "https://example.com/a",
		},
		{
			name: "mobile host infix collapsed",
			in:   "https://en.m.wikipedia.org/wiki/Go",
			want: "https://en.wikipedia.org/wiki/Go",
		},
		{
			name: "mobile path segment dropped",
			in:   "https://example.com/mobile/a",
			want: "https://example.com/a",
		},
		{
			name: "short mobile path segment dropped",
			in:   "https://example.com/m/a",
			want: "https://example.com/a",
		},
		{
			name: "mobile host and tracking params together",
			in:   "https://m.example.com/a?utm_source=x",
			want: "https://example.com/a",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeMalformedURLUnchanged(t *testing.T) {
	for _, raw := range []string{
		"",
		"not a url at all",
		"http://%zz/broken",
	} {
		assert.Equal(t, raw, Normalize(raw))
	}
}
