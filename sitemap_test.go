package docgraph_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/docgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter *docgraph.URLFilter
		url    string
		want   bool
	}{
		{
			name:   "nil filter passes everything",
			filter: nil,
			url:    "https://example.org/anything",
			want:   true,
		},
		{
			name: "include match",
			filter: &docgraph.URLFilter{
				Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
			},
			url:  "https://example.org/docs/intro",
			want: true,
		},
		{
			name: "include miss",
			filter: &docgraph.URLFilter{
				Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
			},
			url:  "https://example.org/blog/post",
			want: false,
		},
		{
			name: "exclude wins over include",
			filter: &docgraph.URLFilter{
				Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
				Exclude: []*regexp.Regexp{regexp.MustCompile(`/docs/v1/`)},
			},
			url:  "https://example.org/docs/v1/old",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.filter.Match(tt.url))
		})
	}
}

func TestCompileURLFilter(t *testing.T) {
	t.Parallel()

	t.Run("empty returns nil filter", func(t *testing.T) {
		t.Parallel()

		f, err := docgraph.CompileURLFilter(nil, nil)
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("compiles include and exclude", func(t *testing.T) {
		t.Parallel()

		f, err := docgraph.CompileURLFilter([]string{`/docs/`}, []string{`\.pdf$`})
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.True(t, f.Match("https://example.org/docs/intro"))
		assert.False(t, f.Match("https://example.org/docs/manual.pdf"))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := docgraph.CompileURLFilter([]string{`[`}, nil)
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(err))
	})
}
