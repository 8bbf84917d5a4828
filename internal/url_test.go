package internal_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esprit/internal"
)

func TestParseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want internal.URL
	}{
		{"root", "/", internal.URL{Host: "example.com", Path: ""}},
		{"path", "/about/team", internal.URL{Host: "example.com", Path: "about/team"}},
		{"trailing slash", "/about/", internal.URL{Host: "example.com", Path: "about/"}},
		{"query and fragment", "/blog?page=2#top", internal.URL{Host: "example.com", Path: "blog", Query: "?page=2", Fragment: "top"}},
		{"absolute http", "http://shop.test/cart", internal.URL{Host: "shop.test", Path: "cart"}},
		{"absolute https strips www", "https://www.shop.test/", internal.URL{Host: "shop.test", Path: ""}},
		{"absolute without path", "https://shop.test?x=1", internal.URL{Host: "shop.test", Query: "?x=1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := internal.ParseURL(tt.raw, "example.com")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("relative path", func(t *testing.T) {
		t.Parallel()
		_, err := internal.ParseURL("about", "example.com")
		require.ErrorIs(t, err, internal.ErrMalformedURL)
	})

	t.Run("hostless absolute", func(t *testing.T) {
		t.Parallel()
		_, err := internal.ParseURL("http:///x", "example.com")
		require.ErrorIs(t, err, internal.ErrMalformedURL)
	})
}

func TestURLSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want []string
		root bool
	}{
		{"", []string{""}, true},
		{"about/team/bios", []string{"about", "team", "bios"}, false},
		{"about/", []string{"about", ""}, false},
		{"/double", []string{"", "double"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			u := internal.URL{Path: tt.path}
			if diff := cmp.Diff(tt.want, u.Segments()); diff != "" {
				t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.want), u.Len())
			assert.Equal(t, tt.root, u.IsRoot())
		})
	}
}

func TestURLSegment(t *testing.T) {
	t.Parallel()

	u := internal.URL{Path: "blog/2024/hello"}

	s, err := u.Segment(1)
	require.NoError(t, err)
	assert.Equal(t, "2024", s)

	for _, i := range []int{-1, 3} {
		_, err := u.Segment(i)
		require.ErrorIs(t, err, internal.ErrIndexOutOfBounds)

		var idx *internal.IndexError
		require.ErrorAs(t, err, &idx)
		assert.Equal(t, i, idx.Index)
		assert.Equal(t, 3, idx.Len)
	}
}

func TestURLString(t *testing.T) {
	t.Parallel()

	u, err := internal.ParseURL("/blog/post?id=7#comments", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "/blog/post?id=7#comments", u.String())
	assert.Equal(t, "/", internal.URL{}.String())
}
