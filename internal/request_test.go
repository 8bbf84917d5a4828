package internal_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esprit/internal"
)

func TestRequestBuilder(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		req := internal.NewRequestBuilder().Build()

		assert.Equal(t, http.MethodGet, req.Method())
		assert.False(t, req.GetExists("x"))
		assert.False(t, req.ServerExists(internal.ServerRemoteAddr))
		assert.Empty(t, req.Language())
		assert.Nil(t, req.Session())
	})

	t.Run("accessors", func(t *testing.T) {
		t.Parallel()
		u, err := internal.ParseURL("/search?q=go", "example.com")
		require.NoError(t, err)

		req := internal.NewRequestBuilder().
			Method("post").
			URL(u).
			GetData(url.Values{"q": {"go"}}).
			PostData(url.Values{"name": {"Ada"}, "empty": {""}}).
			ServerData(map[string]string{internal.ServerRemoteAddr: "10.0.0.1"}).
			Headers(http.Header{"x-custom-header": {"v1", "v2"}}).
			Build()

		assert.Equal(t, http.MethodPost, req.Method())
		assert.Equal(t, "search", req.URL().Path)
		assert.Equal(t, "go", req.Get("q"))
		assert.Equal(t, "Ada", req.Post("name"))
		assert.True(t, req.PostExists("empty"))
		assert.False(t, req.PostExists("missing"))
		assert.Equal(t, "10.0.0.1", req.Server(internal.ServerRemoteAddr))
		assert.Equal(t, "v1", req.Header("X-CUSTOM-HEADER"))
		assert.True(t, req.HeaderExists("x-custom-header"))
	})

	t.Run("built request does not share maps", func(t *testing.T) {
		t.Parallel()
		get := url.Values{"a": {"1"}}
		b := internal.NewRequestBuilder().GetData(get)
		req := b.Build()

		get.Set("a", "2")
		assert.Equal(t, "1", req.Get("a"))
	})

	t.Run("site language", func(t *testing.T) {
		t.Parallel()
		site := &internal.Site{Domain: "example.com", Language: newLanguage(1, "en", nil)}
		req := internal.NewRequestBuilder().Site(site).Build()
		assert.Equal(t, "en", req.Language())
		assert.Same(t, site, req.Site())
	})
}

func TestRequestFlags(t *testing.T) {
	t.Parallel()

	req := internal.NewRequestBuilder().Build()
	assert.False(t, req.IsFlagDefined("mobile"))

	internal.RequestFlaggerFunc(func(r *internal.Request) {
		r.SetFlag("mobile", false)
		r.SetFlag("beta", true)
	}).ProcessRequest(req)

	assert.True(t, req.IsFlagDefined("mobile"))
	assert.False(t, req.HasFlag("mobile"))
	assert.True(t, req.HasFlag("beta"))
}

func TestEnvironmentFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("snapshot", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "http://example.com:8080/signup?ref=ad",
			strings.NewReader("email=a%40b.c"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.Header.Set("User-Agent", "test-agent")
		r.RemoteAddr = "192.0.2.1:1234"
		r.AddCookie(&http.Cookie{Name: "__sid", Value: "tok"})

		env := internal.EnvironmentFromRequest(r)

		assert.Equal(t, http.MethodPost, env.Method)
		assert.Equal(t, "/signup?ref=ad", env.RequestURI)
		assert.Equal(t, "example.com", env.Host)
		assert.Equal(t, "ad", env.Query.Get("ref"))
		assert.Equal(t, "a@b.c", env.Form.Get("email"))
		assert.Equal(t, "192.0.2.1", env.Server[internal.ServerRemoteAddr])
		assert.Equal(t, "test-agent", env.Server[internal.ServerUserAgent])
		assert.NotContains(t, env.Server, internal.ServerHTTPS)

		v, ok := env.Cookie("__sid")
		require.True(t, ok)
		assert.Equal(t, "tok", v)
	})

	t.Run("remote addr ignores proxy headers", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "203.0.113.9:5555"
		r.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
		r.Header.Set("X-Real-IP", "5.6.7.8")

		env := internal.EnvironmentFromRequest(r)
		assert.Equal(t, "203.0.113.9", env.Server[internal.ServerRemoteAddr])
		assert.Equal(t, "1.2.3.4, 10.0.0.1", env.Server[internal.ServerForwardedFor])
		assert.Equal(t, "5.6.7.8", env.Server[internal.ServerRealIP])
	})

	t.Run("no proxy headers", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		env := internal.EnvironmentFromRequest(r)
		assert.NotContains(t, env.Server, internal.ServerForwardedFor)
		assert.NotContains(t, env.Server, internal.ServerRealIP)
	})
}

func TestTypedParams(t *testing.T) {
	t.Parallel()

	u, err := internal.ParseURL("/blog/42/draft", "example.com")
	require.NoError(t, err)
	req := internal.NewRequestBuilder().
		URL(u).
		GetData(url.Values{"page": {"3"}, "ratio": {"0.5"}, "bad": {"x"}}).
		PostData(url.Values{"agree": {"true"}}).
		Build()

	assert.Equal(t, 3, internal.Query[int](req, "page"))
	assert.InDelta(t, 0.5, internal.Query[float64](req, "ratio"), 0.0001)
	assert.Equal(t, 0, internal.Query[int](req, "bad"))
	assert.Equal(t, 10, internal.QueryDefault(req, "bad", 10))
	assert.Equal(t, 10, internal.QueryDefault(req, "missing", 10))
	assert.True(t, internal.Form[bool](req, "agree"))

	id, err := internal.Segment[int64](req, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = internal.Segment[int](req, 2)
	var bad *internal.BadUserInputError
	require.ErrorAs(t, err, &bad)

	_, err = internal.Segment[string](req, 5)
	require.ErrorIs(t, err, internal.ErrIndexOutOfBounds)

	assert.Empty(t, internal.SessionValue[string](req, "user"))
}
