package docgraph_test

import (
	"testing"

	"github.com/fwojciec/docgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLinkFilter_InvalidBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
	}{
		{name: "relative", base: "/docs"},
		{name: "missing host", base: "https://"},
		{name: "wrong scheme", base: "ftp://example.org/docs"},
		{name: "garbage", base: "://nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := docgraph.NewLinkFilter(tt.base, nil)
			assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(err))
		})
	}
}

func TestLinkFilter_Eligible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		patterns []string
		link     string
		want     bool
	}{
		{
			name: "base URL itself always eligible",
			base: "https://example.org/learn",
			link: "https://example.org/learn",
			want: true,
		},
		{
			name: "base URL with query and fragment still eligible",
			base: "https://example.org/learn",
			link: "https://example.org/learn?lang=en#intro",
			want: true,
		},
		{
			name: "descendant matching default pattern",
			base: "https://example.org",
			link: "https://example.org/docs/getting-started",
			want: true,
		},
		{
			name: "descendant missing every pattern",
			base: "https://example.org",
			link: "https://example.org/blog/announcement",
			want: false,
		},
		{
			name: "different host",
			base: "https://example.org/docs",
			link: "https://other.org/docs/page",
			want: false,
		},
		{
			name: "different scheme",
			base: "https://example.org/docs",
			link: "http://example.org/docs/page",
			want: false,
		},
		{
			name: "outside base path",
			base: "https://example.org/docs",
			link: "https://example.org/blog/docs-post",
			want: false,
		},
		{
			name:     "custom pattern",
			base:     "https://example.org",
			patterns: []string{"/handbook/"},
			link:     "https://example.org/handbook/ch1",
			want:     true,
		},
		{
			name:     "custom patterns replace defaults",
			base:     "https://example.org",
			patterns: []string{"/handbook/"},
			link:     "https://example.org/docs/page",
			want:     false,
		},
		{
			name: "host casing is normalized",
			base: "https://Example.ORG/docs",
			link: "https://example.org/docs/api/ref",
			want: true,
		},
		{
			name: "unparseable link",
			base: "https://example.org/docs",
			link: "https://example.org/docs/%zz",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := docgraph.NewLinkFilter(tt.base, tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Eligible(tt.link))
		})
	}
}

func TestLinkFilter_DefaultPatterns(t *testing.T) {
	t.Parallel()

	f, err := docgraph.NewLinkFilter("https://example.org", nil)
	require.NoError(t, err)

	for _, link := range []string{
		"https://example.org/api/ref",
		"https://example.org/guide/start",
		"https://example.org/docs/intro",
		"https://example.org/reference/config",
		"https://example.org/tutorial/first-app",
	} {
		assert.True(t, f.Eligible(link), "expected %s to be eligible", link)
	}
}
