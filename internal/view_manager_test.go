package internal_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esprit/internal"
	"github.com/dmitrymomot/esprit/pkg/logger"
)

func TestViewManager(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("first resolver wins", func(t *testing.T) {
		t.Parallel()
		vm := internal.NewViewManager(nil, internal.FallbackView{}, nil)
		vm.AddViewResolver(internal.NewPathViewResolver(viewSource("About")))
		vm.AddViewResolver(internal.NewCatchallViewResolver(namedView("catchall")))
		var later int
		vm.AddViewResolver(internal.ViewResolverFunc(func(context.Context, *internal.Response) (internal.View, error) {
			later++
			return nil, nil
		}))

		rec := httptest.NewRecorder()
		require.NoError(t, vm.Display(ctx, internal.NewOutput(rec), internal.NewResponse(requestFor(t, "/about"))))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "About", rec.Body.String())

		rec = httptest.NewRecorder()
		require.NoError(t, vm.Display(ctx, internal.NewOutput(rec), internal.NewResponse(requestFor(t, "/contact"))))
		assert.Equal(t, "catchall", rec.Body.String())
		assert.Zero(t, later, "resolvers after a match must not be consulted")
	})

	t.Run("miss uses fallback view", func(t *testing.T) {
		t.Parallel()
		mem := logger.NewMemoryRecorder(logger.LevelFinest)
		vm := internal.NewViewManager(nil, internal.FallbackView{}, logger.New(logger.WithRecorder(mem)))

		rec := httptest.NewRecorder()
		resp := internal.NewResponse(requestFor(t, "/nowhere"))
		require.NoError(t, vm.Display(ctx, internal.NewOutput(rec), resp))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Internal Server Error")
		assert.True(t, mem.Contains(logger.LevelError, "no matching view found"))
		assert.True(t, mem.Contains(logger.LevelFinest, "displaying view"))
	})

	t.Run("resolver error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		vm := internal.NewViewManager(nil, internal.FallbackView{}, nil)
		vm.AddViewResolver(internal.ViewResolverFunc(func(context.Context, *internal.Response) (internal.View, error) {
			return nil, boom
		}))

		err := vm.Display(ctx, internal.NewOutput(httptest.NewRecorder()), internal.NewResponse(requestFor(t, "/")))
		require.ErrorIs(t, err, boom)
	})

	t.Run("status sent without body", func(t *testing.T) {
		t.Parallel()
		vm := internal.NewViewManager(nil, internal.FallbackView{}, nil)
		vm.AddViewResolver(internal.NewCatchallViewResolver(internal.ViewFunc(
			func(_ context.Context, out *internal.Output, _ *internal.Response) error {
				out.SetStatus(internal.StatusForbidden)
				return nil
			})))

		rec := httptest.NewRecorder()
		require.NoError(t, vm.Display(ctx, internal.NewOutput(rec), internal.NewResponse(requestFor(t, "/"))))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
