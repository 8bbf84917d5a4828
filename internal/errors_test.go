package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esprit/internal"
)

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusNotFound, "not found")
		require.Same(t, httpErr, internal.AsHTTPError(httpErr))
	})

	t.Run("wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusBadRequest, "bad request")
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", httpErr))
		require.Same(t, httpErr, internal.AsHTTPError(err))
	})

	t.Run("unrelated error", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(errors.New("boom")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(nil))
	})
}

func TestErrInternal(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	e := internal.ErrInternal(internal.WithError(cause), internal.WithRequestID("req-1"))

	assert.Equal(t, http.StatusInternalServerError, e.StatusCode())
	assert.Equal(t, "Internal Server Error", e.Title)
	assert.Equal(t, "req-1", e.RequestID)
	assert.NotContains(t, e.Error(), "connection refused")
	assert.ErrorIs(t, e, cause)
}

func TestRedirectError(t *testing.T) {
	t.Parallel()

	t.Run("temporary", func(t *testing.T) {
		t.Parallel()
		err := internal.Redirect("/login")
		assert.Equal(t, internal.StatusTemporaryRedirect, err.Status())
		assert.Equal(t, "/login", err.Location)
	})

	t.Run("permanent", func(t *testing.T) {
		t.Parallel()
		err := internal.PermanentRedirect("/new-home")
		assert.Equal(t, internal.StatusMovedPermanently, err.Status())
	})

	t.Run("found through wrapping", func(t *testing.T) {
		t.Parallel()
		var target *internal.RedirectError
		err := fmt.Errorf("command: %w", internal.Redirect("/x"))
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "/x", target.Location)
	})
}

func TestBadUserInputError(t *testing.T) {
	t.Parallel()

	err := &internal.BadUserInputError{Field: "page", Err: internal.ErrMalformedURL}
	assert.ErrorIs(t, err, internal.ErrMalformedURL)
	assert.Contains(t, err.Error(), "page")

	bare := &internal.BadUserInputError{Field: "email"}
	assert.Equal(t, "bad user input: email", bare.Error())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status internal.Status
		code   int
		str    string
	}{
		{internal.StatusOK, 200, "200 OK"},
		{internal.StatusMovedPermanently, 301, "301 Moved Permanently"},
		{internal.StatusTemporaryRedirect, 307, "307 Temporary Redirect"},
		{internal.StatusForbidden, 403, "403 Forbidden"},
		{internal.StatusFileNotFound, 404, "404 File Not Found"},
		{internal.StatusInternalServerError, 500, "500 Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.code, tt.status.Code())
			assert.Equal(t, tt.str, tt.status.String())
			assert.True(t, tt.status.Valid())
		})
	}

	assert.False(t, internal.Status(418).Valid())
}
