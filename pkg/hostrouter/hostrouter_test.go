package hostrouter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esprit/pkg/hostrouter"
)

func TestTable_Match(t *testing.T) {
	t.Parallel()

	table := hostrouter.NewTable(map[string]int{
		"example.com":          1,
		"*.example.com":        2,
		"specific.example.com": 3,
		"[::1]":                4,
		"  ":                   5,
	})
	require.Equal(t, 4, table.Len())

	tests := []struct {
		name   string
		host   string
		want   int
		wantOK bool
	}{
		{"exact", "example.com", 1, true},
		{"case insensitive", "Example.COM", 1, true},
		{"with port", "example.com:8080", 1, true},
		{"specific takes priority", "specific.example.com", 3, true},
		{"wildcard", "foo.example.com", 2, true},
		{"wildcard is one label deep", "a.b.example.com", 0, false},
		{"ipv6 with port", "[::1]:8080", 4, true},
		{"unknown", "other.com", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := table.Match(tt.host)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", hostrouter.Normalize("Example.com:443"))
	assert.Equal(t, "[::1]", hostrouter.Normalize("[::1]:8080"))
	assert.Equal(t, "[::1]", hostrouter.Normalize("[::1]"))
	assert.Equal(t, "localhost", hostrouter.Normalize("LOCALHOST"))
}

func TestRouter(t *testing.T) {
	t.Parallel()

	body := func(s string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(s))
		})
	}

	router := hostrouter.New(hostrouter.Routes{
		"api.example.com": body("api"),
		"*.example.com":   body("tenant"),
	}, body("default"))

	tests := []struct {
		host string
		want string
	}{
		{"api.example.com", "api"},
		{"acme.example.com:8080", "tenant"},
		{"example.com", "default"},
		{"unknown.com", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}

	t.Run("nil fallback is not found", func(t *testing.T) {
		t.Parallel()
		r := hostrouter.New(nil, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
